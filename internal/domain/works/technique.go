package works

// Technique is the medium classification of an artwork, stored as a 3-letter code.
type Technique string

const (
	TechniqueDigital    Technique = "DIG"
	TechniqueVector     Technique = "VEC"
	TechniquePixelArt   Technique = "PIX"
	TechniqueWatercolor Technique = "ACU"
	TechniqueTempera    Technique = "TEM"
	TechniqueOil        Technique = "OLE"
	TechniqueAcrylic    Technique = "ACR"
	TechniqueGouache    Technique = "GOU"
	TechniqueGraphite   Technique = "GRF"
	TechniqueInk        Technique = "TIN"
	TechniqueCharcoal   Technique = "CAR"
	TechniquePastel     Technique = "PAS"
	TechniqueMarker     Technique = "MAR"
	TechniqueMixedMedia Technique = "MIX"
	TechniqueCollage    Technique = "COL"
	TechniqueSketch     Technique = "BOC"
	TechniqueOther      Technique = "OTR"

	DefaultTechnique = TechniqueSketch
)

type TechniqueChoice struct {
	Code  Technique `json:"code"`
	Label string    `json:"label"`
}

// order matters: it is the order choices are offered in forms
var techniqueChoices = []TechniqueChoice{
	{TechniqueDigital, "Digital"},
	{TechniqueVector, "Vector"},
	{TechniquePixelArt, "Pixel Art"},
	{TechniqueWatercolor, "Watercolor"},
	{TechniqueTempera, "Tempera"},
	{TechniqueOil, "Oil"},
	{TechniqueAcrylic, "Acrylic"},
	{TechniqueGouache, "Gouache"},
	{TechniqueGraphite, "Graphite"},
	{TechniqueInk, "Ink"},
	{TechniqueCharcoal, "Charcoal"},
	{TechniquePastel, "Pastel"},
	{TechniqueMarker, "Marker"},
	{TechniqueMixedMedia, "Mixed Media"},
	{TechniqueCollage, "Collage"},
	{TechniqueSketch, "Sketch"},
	{TechniqueOther, "Other"},
}

func TechniqueChoices() []TechniqueChoice {
	out := make([]TechniqueChoice, len(techniqueChoices))
	copy(out, techniqueChoices)
	return out
}

func (t Technique) Valid() bool {
	for _, c := range techniqueChoices {
		if c.Code == t {
			return true
		}
	}
	return false
}

func (t Technique) Label() string {
	for _, c := range techniqueChoices {
		if c.Code == t {
			return c.Label
		}
	}
	return string(t)
}
