/*
Package manifest reads job lists from YAML or JSON files.

	project: avatar
	jobs:
	  - kind: int
	    layer: Outfit
	    items: [Casual, Formal, {name: Retired, empty: true}, Party]
	    menu: Outfits
	  - kind: overlay
	    layer: Jacket
	    selector: Outfit
	    folder: anims/jacket   # "N.label" subfolders, see package scan
	    menu: true
	  - kind: control
	    path: Emotes
	    control: Wave
	    parameter: Emote
	    type: int
	    value: 3

Items may be bare names or maps with name, clip, group and empty. A job's
menu may be true (default folder), a path string, or {path: ...}.
*/
package manifest
