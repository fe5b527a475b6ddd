package gallery

const seedArtist = "Gigi Yulo-Villamor"

var seed = []Artwork{
	{ID: "1", Title: "Solitude", Artist: seedArtist, Description: "Watercolor 10in x 15in", Price: "5000", ImageURL: "https://i.imgur.com/ycoy2jW.jpeg"},
	{ID: "2", Title: "Sinadya", Artist: seedArtist, Description: "Acrylic; 18in x 20in", Price: "5000", ImageURL: "https://i.imgur.com/kwUduxc.jpeg"},
	{ID: "3", Title: "Crazy Y Ranch", Artist: seedArtist, Description: "Gouache", Price: "5000", ImageURL: "https://i.imgur.com/ipoGrcZ.jpeg"},
	{ID: "4", Title: "Gilded Night", Artist: seedArtist, Description: "Acrylic 16in x 20in", Price: "5000", ImageURL: "https://i.imgur.com/YfPhQp1.jpeg"},
	{ID: "5", Title: "Inasal", Artist: seedArtist, Description: "acrylic on chopping board", Price: "5000", ImageURL: "https://i.imgur.com/GKHyZwH.jpeg"},
	{ID: "6", Title: "Teresita", Artist: seedArtist, Description: "Acrylic 18in x 24in", Price: "5000", ImageURL: "https://i.imgur.com/Tvf2KAt.jpeg"},
	{ID: "7", Title: "Sunset at PeacePond", Artist: seedArtist, Description: "Acrylic 14in x 16in", Price: "5000", ImageURL: "https://i.imgur.com/t6ZfoEz.jpeg"},
	{ID: "8", Title: "Sapphire Bird", Artist: seedArtist, Description: "Colored pencils on kraft", Price: "5000", ImageURL: "https://i.imgur.com/XQ2WIN8.jpeg"},
	{ID: "9", Title: "Still Life Floral", Artist: seedArtist, Description: "9in x 5in", Price: "5000", ImageURL: "https://i.imgur.com/XX976gx.jpeg"},
	{ID: "10", Title: "Tree Series #3", Artist: seedArtist, Description: "14in x 9in", Price: "5000", ImageURL: "https://i.imgur.com/VcL8Yrs.jpeg"},
	{ID: "11", Title: "Violet", Artist: seedArtist, Description: "9in x 12in", Price: "5000", ImageURL: "https://i.imgur.com/XAu3oM5.jpeg"},
	{ID: "12", Title: "Saffron Whispers", Artist: seedArtist, Description: "Acrylic 18in x 24in", Price: "5000", ImageURL: "https://i.imgur.com/ipoGrcZ.jpeg"},
}

// Seed returns a fresh copy of the initial exhibition.
func Seed() []Artwork {
	out := make([]Artwork, len(seed))
	copy(out, seed)
	return out
}
