/*
Package domain contains the core models shared by the synthesizer and the menu composer.

It is kept pure and free of I/O. Everything here is an in-memory structure that a
host persists or renders on its own terms.

# Key Entities

  - Parameter / ParameterSpace: named, typed values; first declaration wins.
  - Layer / State / Transition / Condition: the static state machine of one layer.
  - Controller: parameters plus an ordered list of layers.
  - Menu / Control: a tree of bounded pages of toggles and submenu links.
  - Project: the controller, root menu and synchronized menu parameters one build touches.
*/
package domain
