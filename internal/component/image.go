package component

import "strings"

const TypeImage = "image"

// 空图片占位样式
const (
	PlaceholderBackground = "#e5e7eb"
	PlaceholderColor      = "#6b7280"
	PlaceholderLabel      = "No image"
)

var imageSchema = Schema{
	Type:     TypeImage,
	Label:    "Image",
	Category: CategoryMedia,
	Properties: []PropertySpec{
		{Name: "src", Type: TypeString, Default: "", Policy: PolicySubstitute},
		{Name: "alt", Type: TypeString, Default: "", Policy: PolicySubstitute},
		{Name: "width", Type: TypeInteger, Default: 300, Range: between(1, 2000), Policy: PolicyClamp},
		{Name: "height", Type: TypeInteger, Default: 200, Range: between(1, 2000), Policy: PolicyClamp},
		{Name: "fit", Type: TypeEnum, Default: "cover", Enum: []string{"cover", "contain", "fill"}, Policy: PolicySubstitute},
		{Name: "border_radius", Type: TypeInteger, Default: 0, Range: between(0, 100), Policy: PolicyClamp},
	},
}

func renderImage(p Properties) (VisualOutput, error) {
	layout := Attributes{
		"width":  px(p.Int("width")),
		"height": px(p.Int("height")),
	}
	radius := px(p.Int("border_radius"))

	src := strings.TrimSpace(p.String("src"))
	if src == "" || !isSafeSource(src) {
		layout["display"] = "flex"
		layout["align-items"] = "center"
		layout["justify-content"] = "center"
		return VisualOutput{
			Element: "placeholder",
			Text:    PlaceholderLabel,
			Layout:  layout,
			Style: Attributes{
				"background-color": PlaceholderBackground,
				"color":            PlaceholderColor,
				"font-size":        "14px",
				"text-align":       "center",
				"border-radius":    radius,
			},
		}, nil
	}

	return VisualOutput{
		Element: "img",
		Layout:  layout,
		Style: Attributes{
			"object-fit":    p.String("fit"),
			"border-radius": radius,
		},
		Attrs: Attributes{
			"src": src,
			"alt": p.String("alt"),
		},
	}, nil
}

// isSafeSource 只接受 http(s)、相对路径和图片 data URI
func isSafeSource(src string) bool {
	lower := strings.ToLower(src)
	i := strings.Index(lower, ":")
	if i < 0 {
		return true
	}
	if slash := strings.IndexAny(lower, "/?#"); slash >= 0 && slash < i {
		return true
	}
	switch lower[:i] {
	case "http", "https":
		return true
	case "data":
		return strings.HasPrefix(lower, "data:image/")
	}
	return false
}
