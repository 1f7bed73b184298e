// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package gateway

import (
	"encoding/json"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/holomush/shopfront/internal/catalog"
)

// Error codes for request bodies that cannot be used.
const (
	CodeMalformedBody = "GATEWAY_MALFORMED_BODY"
	CodeInvalidBody   = "GATEWAY_INVALID_BODY"
)

const schemaBaseID = "https://holomush.dev/shopfront/schemas/"

// LoginRequest is the body of a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RequestBodies lists the request body types accepted by the gateway,
// keyed by schema name.
func RequestBodies() map[string]any {
	return map[string]any{
		"login":   &LoginRequest{},
		"product": &catalog.NewProduct{},
		"review":  &catalog.NewReview{},
	}
}

// reflectSchema builds the JSON Schema for v. Fields are typed but never
// required, and unknown properties are allowed; presence is checked by
// the services so that missing fields get their own messages.
func reflectSchema(name string, v any) *jsonschema.Schema {
	r := jsonschema.Reflector{
		DoNotReference:             true,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := r.Reflect(v)
	schema.ID = jsonschema.ID(schemaBaseID + name + ".schema.json")
	schema.Title = "Shopfront " + name + " request"
	return schema
}

// GenerateSchema returns the indented JSON Schema for the named request body.
func GenerateSchema(name string) ([]byte, error) {
	v, ok := RequestBodies()[name]
	if !ok {
		return nil, oops.Code("SCHEMA_UNKNOWN").With("name", name).Errorf("unknown request body")
	}
	data, err := json.MarshalIndent(reflectSchema(name, v), "", "  ")
	if err != nil {
		return nil, oops.Code("SCHEMA_MARSHAL_FAILED").With("name", name).Wrap(err)
	}
	return data, nil
}

// bodyDecoder validates a JSON body against a compiled schema before
// decoding it into the target type.
type bodyDecoder struct {
	name   string
	schema *jschema.Schema
}

func newBodyDecoder(name string, v any) (*bodyDecoder, error) {
	data, err := json.Marshal(reflectSchema(name, v))
	if err != nil {
		return nil, oops.Code("SCHEMA_MARSHAL_FAILED").With("name", name).Wrap(err)
	}
	doc, err := jschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return nil, oops.Code("SCHEMA_COMPILE_FAILED").With("name", name).Wrap(err)
	}

	id := schemaBaseID + name + ".schema.json"
	c := jschema.NewCompiler()
	if err := c.AddResource(id, doc); err != nil {
		return nil, oops.Code("SCHEMA_COMPILE_FAILED").With("name", name).Wrap(err)
	}
	sch, err := c.Compile(id)
	if err != nil {
		return nil, oops.Code("SCHEMA_COMPILE_FAILED").With("name", name).Wrap(err)
	}
	return &bodyDecoder{name: name, schema: sch}, nil
}

// mustBodyDecoder panics if the reflected schema does not compile; the
// input types are fixed at build time.
func mustBodyDecoder(name string, v any) *bodyDecoder {
	d, err := newBodyDecoder(name, v)
	if err != nil {
		panic(err)
	}
	return d
}

// Decode parses body into dst. An empty body decodes as {}. Top-level
// nulls are treated as absent. Unparseable JSON yields CodeMalformedBody;
// JSON of the wrong shape yields CodeInvalidBody.
func (d *bodyDecoder) Decode(body string, dst any) error {
	if strings.TrimSpace(body) == "" {
		body = "{}"
	}

	inst, err := jschema.UnmarshalJSON(strings.NewReader(body))
	if err != nil {
		return oops.Code(CodeMalformedBody).With("body", d.name).Wrap(err)
	}
	if obj, ok := inst.(map[string]any); ok {
		for k, v := range obj {
			if v == nil {
				delete(obj, k)
			}
		}
	}
	if err := d.schema.Validate(inst); err != nil {
		return oops.Code(CodeInvalidBody).With("body", d.name).With("reason", err.Error()).Errorf("invalid request body")
	}
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		return oops.Code(CodeInvalidBody).With("body", d.name).With("reason", err.Error()).Errorf("invalid request body")
	}
	return nil
}
