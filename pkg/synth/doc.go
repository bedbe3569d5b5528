/*
Package synth builds the static state machine of a controller layer.

Every build is destructive-then-rebuilding: an existing layer with the same
name is reset (states and transitions discarded, identity kept) before the
new states are added, so calling a build twice with the same input yields
the same layer.

Three shapes are supported:

  - Boolean: one idle state and one independently gated state per clip.
  - Integer: one shared int parameter selecting between indexed states.
  - Indexed overlay: externally grouped clips selected by an existing int
    parameter and switched on by a separate bool flag.

Transitions are always immediate. Nothing here evaluates them.
*/
package synth
