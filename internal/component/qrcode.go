package component

const TypeQRCode = "qrcode"

const (
	DefaultQRValue = "https://example.com"
	MaxQRSize      = 200
	MinQRSize      = 50
)

var qrcodeSchema = Schema{
	Type:     TypeQRCode,
	Label:    "QR Code",
	Category: CategoryCode,
	Properties: []PropertySpec{
		{Name: "value", Type: TypeString, Default: DefaultQRValue, Policy: PolicySubstitute, NonEmpty: true},
		{Name: "size", Type: TypeInteger, Default: 128, Range: between(MinQRSize, MaxQRSize), Policy: PolicyClamp},
		{Name: "foreground", Type: TypeColor, Default: "#000000", Policy: PolicySubstitute},
		{Name: "background", Type: TypeColor, Default: "#ffffff", Policy: PolicySubstitute},
		{Name: "error_level", Type: TypeEnum, Default: "M", Enum: []string{"L", "M", "Q", "H"}, Policy: PolicyReject},
	},
}

func renderQRCode(p Properties) (VisualOutput, error) {
	size := px(p.Int("size"))
	return VisualOutput{
		Element: "qrcode",
		Layout: Attributes{
			"width":  size,
			"height": size,
		},
		Style: Attributes{
			"color":            p.String("foreground"),
			"background-color": p.String("background"),
		},
		Attrs: Attributes{
			"value":       p.String("value"),
			"error_level": p.String("error_level"),
		},
	}, nil
}
