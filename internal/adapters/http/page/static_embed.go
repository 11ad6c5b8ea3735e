package page

import "embed"

//go:embed templates/*.html
var templateFS embed.FS

// pageTemplate is the chart page template inside templateFS.
const pageTemplate = "templates/plotly_3graphs.html"
