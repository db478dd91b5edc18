package swagger

import (
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"

	apicontract "github.com/tuanvumaihuynh/sneaker-shop/api-contract"
)

const (
	DocsPath = "/docs"
	YAMLPath = DocsPath + "/openapi.yml"
	JSONPath = DocsPath + "/openapi.json"
)

// Register mounts the Swagger UI at DocsPath together with the contract it renders, served
// verbatim as YAML and re-encoded from doc as JSON.
func Register(r chi.Router, doc *openapi3.T) error {
	jsonDoc, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}

	r.Get(DocsPath, serve("text/html; charset=utf-8", []byte(page(doc.Info.Title, YAMLPath))))
	r.Get(YAMLPath, serve("application/yaml", apicontract.GetSpecBytes()))
	r.Get(JSONPath, serve("application/json", jsonDoc))

	return nil
}

func serve(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(body)
	}
}

const uiVersion = "5.29.3"

func page(title, specURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>%[1]s</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@%[2]s/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@%[2]s/swagger-ui-bundle.js" crossorigin></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '%[3]s',
      dom_id: '#swagger-ui',
      deepLinking: true,
      displayRequestDuration: true,
      tryItOutEnabled: true,
    });
  };
</script>
</body>
</html>
`, title, uiVersion, specURL)
}
