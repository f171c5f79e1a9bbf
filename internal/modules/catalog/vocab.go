package catalog

// The tag vocabularies are closed: any value outside them is rejected at
// write time and in list filters.

var colorVocab = map[string]bool{
	"white": true, "black": true, "gray": true, "beige": true, "brown": true,
	"oak": true, "walnut": true, "navy": true, "green": true, "yellow": true,
	"red": true,
}

var styleVocab = map[string]bool{
	"modern": true, "scandinavian": true, "industrial": true, "rustic": true,
	"classic": true, "minimalist": true, "bohemian": true, "retro": true,
}

var roomVocab = map[string]bool{
	"living_room": true, "bedroom": true, "dining_room": true, "kitchen": true,
	"office": true, "hallway": true, "kids_room": true, "outdoor": true,
}

// ValidColor reports whether c is in the color vocabulary.
func ValidColor(c string) bool { return colorVocab[c] }

// ValidStyle reports whether s is in the style vocabulary.
func ValidStyle(s string) bool { return styleVocab[s] }

// ValidRoom reports whether r is in the room vocabulary.
func ValidRoom(r string) bool { return roomVocab[r] }
