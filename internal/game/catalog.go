package game

// Character is one matchable identity from the catalog: a name, a picture
// and a catchphrase sound. The core treats the asset paths as opaque.
type Character struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Sound string `json:"sound"`
}

// DefaultDailyCount is the number of unique characters in a day's puzzle.
var DefaultDailyCount = 6

// Catalog is the full character roster, in catalog order. Order matters:
// the daily selection permutes this exact sequence, so reordering entries
// changes every puzzle ever published.
var Catalog = []Character{
	{ID: "tralalero", Name: "Tralalero Tralala", Image: "/web/images/tralalero.png", Sound: "/web/sounds/tralalero.mp3"},
	{ID: "bombardiro", Name: "Bombardiro Crocodilo", Image: "/web/images/bombardiro.png", Sound: "/web/sounds/bombardiro.mp3"},
	{ID: "lirili", Name: "Lirilì Larilà", Image: "/web/images/lirili.png", Sound: "/web/sounds/lirili.mp3"},
	{ID: "patapim", Name: "Brr Brr Patapim", Image: "/web/images/patapim.png", Sound: "/web/sounds/patapim.mp3"},
	{ID: "tungtung", Name: "Tung Tung Tung Sahur", Image: "/web/images/tungtung.png", Sound: "/web/sounds/tungtung.mp3"},
	{ID: "boneca", Name: "Boneca Ambalabu", Image: "/web/images/boneca.png", Sound: "/web/sounds/boneca.mp3"},
	{ID: "chimpanzini", Name: "Chimpanzini Bananini", Image: "/web/images/chimpanzini.png", Sound: "/web/sounds/chimpanzini.mp3"},
	{ID: "bobritto", Name: "Bobritto Bandito", Image: "/web/images/bobritto.png", Sound: "/web/sounds/bobritto.mp3"},
}
