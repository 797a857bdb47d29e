package param

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
	decoder.SetAliasTag("json")
}

// Binding binds request parameters into v. Query values are decoded for
// GET requests, json bodies for everything else.
func Binding(r *http.Request, v interface{}) error {
	if r.Method == http.MethodGet {
		return decoder.Decode(v, r.URL.Query())
	}

	return json.NewDecoder(r.Body).Decode(v)
}
