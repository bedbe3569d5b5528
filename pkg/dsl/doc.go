/*
Package dsl provides a fluent Go API for declaring fxforge jobs.

It is the programmatic counterpart of manifest files: useful for tests,
generated projects and IDE autocompletion.

Example usage:

	b := dsl.New()

	b.Int("Outfit").
		Clip("Casual", "anims/Casual.anim").
		Clip("Formal", "anims/Formal.anim").
		InMenu("Outfits")

	b.Overlay("Jacket").
		Selector("Outfit").
		Clip(1, "Open", "anims/JacketOpen.anim").
		InMenu("")

	jobs, err := b.Build()
	// ... pass each job to forge.Apply
*/
package dsl
