package transformations

// Type describes one editing mode offered by the add-transformation
// pages. Keys match the frontend route segment /transformations/add/:type.
type Type struct {
	Key      string `json:"type"`
	Title    string `json:"title"`
	SubTitle string `json:"subTitle"`
	Icon     string `json:"icon"`
}

var types = []Type{
	{Key: "restore", Title: "Restore Image", SubTitle: "Refine images by removing noise and imperfections", Icon: "image.svg"},
	{Key: "removeBackground", Title: "Background Remove", SubTitle: "Removes the background of the image using AI", Icon: "camera.svg"},
	{Key: "fill", Title: "Generative Fill", SubTitle: "Enhance an image's dimensions using AI outpainting", Icon: "stars.svg"},
	{Key: "remove", Title: "Object Remove", SubTitle: "Identify and eliminate objects from images", Icon: "scan.svg"},
	{Key: "recolor", Title: "Object Recolor", SubTitle: "Identify and recolor objects from the image", Icon: "filter.svg"},
}

// AllTypes returns the catalog in display order.
func AllTypes() []Type {
	out := make([]Type, len(types))
	copy(out, types)
	return out
}

// TypeByKey resolves a route segment to its transformation type.
func TypeByKey(key string) (Type, bool) {
	for _, t := range types {
		if t.Key == key {
			return t, true
		}
	}
	return Type{}, false
}
