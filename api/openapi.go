package api

import (
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/skos"
)

const TAG_THESAURI = "thesauri"

// registerOpenAPI registers endpoints for OpenAPI JSON and YAML specs.
func (s *Server) registerOpenAPI(api *gin.RouterGroup) {
	apispec := newApiSpec(s.deps.Config.Server.BackendURL)
	api.GET("/openapi.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, apispec)
	})

	api.GET("/openapi.yaml", func(c *gin.Context) {
		data, err := yaml.Marshal(apispec)
		if err != nil {
			s.logger.Error("Failed marshaling openapi spec", zap.Error(err))
			c.JSON(http.StatusInternalServerError, JSONError{Error: err.Error()})
			return
		}
		c.Data(http.StatusOK, "text/yaml", data)
	})
}

func schemaRef(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, nil)
}

var errorResponse = &openapi3.ResponseRef{Ref: "#/components/responses/ErrorResponse"}

func jsonResponse(description string, schema *openapi3.SchemaRef) *openapi3.Response {
	return openapi3.NewResponse().
		WithDescription(description).
		WithContent(openapi3.Content{"application/json": openapi3.NewMediaType().WithSchemaRef(schema)})
}

func operation(id string, summary string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = id
	op.Summary = summary
	op.Tags = []string{TAG_THESAURI}
	op.Responses = openapi3.NewResponses()
	op.Responses.Set("default", errorResponse)
	return op
}

// newApiSpec constructs the OpenAPI specification for this service.
func newApiSpec(backendURL string) *openapi3.T {
	stringSchema := openapi3.NewStringSchema
	thesaurusSchema := openapi3.NewObjectSchema().
		WithProperty("id", stringSchema().WithFormat("uuid")).
		WithProperty("identifier", stringSchema()).
		WithProperty("title", stringSchema()).
		WithProperty("description", stringSchema()).
		WithProperty("about", stringSchema()).
		WithProperty("date", stringSchema())
	keywordSchema := openapi3.NewObjectSchema().
		WithProperty("about", stringSchema()).
		WithProperty("altLabel", stringSchema()).
		WithProperty("label", stringSchema()).
		WithProperty("lang", stringSchema())
	summarySchema := openapi3.NewObjectSchema().
		WithProperty("identifier", stringSchema()).
		WithProperty("title", stringSchema()).
		WithProperty("dryRun", openapi3.NewBoolSchema())
	for _, count := range []string{"concepts", "keywords", "keywordsSkipped", "keywordsFailed", "labels", "labelsDropped", "labelsFailed"} {
		summarySchema.WithProperty(count, openapi3.NewIntegerSchema())
	}
	importSchema := openapi3.NewObjectSchema().
		WithProperty("file", stringSchema().WithFormat("binary")).
		WithProperty("name", stringSchema()).
		WithProperty("variant", stringSchema().WithEnum("gemet", "agrovoc")).
		WithProperty("format", stringSchema()).
		WithProperty("dryrun", openapi3.NewBoolSchema()).
		WithProperty("lower_case", openapi3.NewBoolSchema()).
		WithProperty("defaultlang", stringSchema()).
		WithProperty("scheme", stringSchema()).
		WithProperty("title", stringSchema()).
		WithProperty("description", stringSchema())
	importSchema.Required = []string{"file", "name"}
	languages := make([]any, 0, len(skos.SupportedLanguages))
	for _, lang := range skos.SupportedLanguages {
		languages = append(languages, lang)
	}

	listThesauri := operation("listThesauri", "List loaded thesauri")
	listThesauri.AddResponse(http.StatusOK, jsonResponse("Thesauri ordered by identifier",
		openapi3.NewSchemaRef("", openapi3.NewArraySchema().WithItems(thesaurusSchema))))

	importThesaurus := operation("importThesaurus", "Load an RDF thesaurus file")
	importThesaurus.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithRequired(true).
		WithFormDataSchema(importSchema)}
	importThesaurus.AddResponse(http.StatusCreated, jsonResponse("Thesaurus loaded", schemaRef("Summary")))
	importThesaurus.AddResponse(http.StatusOK, jsonResponse("Dry run finished", schemaRef("Summary")))

	identifier := openapi3.NewPathParameter("identifier").WithSchema(stringSchema())
	getThesaurus := operation("getThesaurus", "Get a thesaurus")
	getThesaurus.AddParameter(identifier)
	getThesaurus.AddResponse(http.StatusOK, jsonResponse("The thesaurus", schemaRef("Thesaurus")))

	listKeywords := operation("listKeywords", "List the keywords of a thesaurus in one language")
	listKeywords.AddParameter(identifier)
	listKeywords.AddParameter(openapi3.NewQueryParameter("lang").WithSchema(stringSchema()))
	listKeywords.AddResponse(http.StatusOK, jsonResponse("Keywords ordered by alt label",
		openapi3.NewSchemaRef("", openapi3.NewArraySchema().WithItems(keywordSchema))))

	labels := operation("getLabels", "Get keyword labels in one language")
	labels.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithContent(openapi3.NewContentWithFormDataSchema(openapi3.NewObjectSchema().
			WithProperty("lang", stringSchema()).
			WithProperty("id", openapi3.NewArraySchema().WithItems(stringSchema()))))}
	labels.AddResponse(http.StatusOK, jsonResponse("Label by keyword IRI",
		openapi3.NewSchemaRef("", openapi3.NewObjectSchema().WithAdditionalProperties(stringSchema()))))

	spec := &openapi3.T{
		OpenAPI: "3.1.0",
		Info: &openapi3.Info{
			Title:       "Thesaurus importer API",
			Description: "API for loading SKOS thesauri and reading their keywords",
			Version:     "v1",
			License: &openapi3.License{
				Name: "MIT License",
				URL:  "https://opensource.org/licenses/MIT",
			},
		},
		Servers: openapi3.Servers{
			&openapi3.Server{
				Description: "Production",
				URL:         strings.TrimSuffix(backendURL, "/") + BasePath,
			},
		},
		Tags: openapi3.Tags{
			&openapi3.Tag{Name: TAG_THESAURI},
		},
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"Thesaurus": openapi3.NewSchemaRef("", thesaurusSchema),
				"Keyword":   openapi3.NewSchemaRef("", keywordSchema),
				"Summary":   openapi3.NewSchemaRef("", summarySchema),
				"Language":  openapi3.NewSchemaRef("", stringSchema().WithEnum(languages...)),
			},
			Responses: openapi3.ResponseBodies{
				"ErrorResponse": &openapi3.ResponseRef{
					Value: openapi3.NewResponse().
						WithDescription("Response when errors happen.").
						WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewSchema().
							WithProperty("error", openapi3.NewStringSchema()))),
				},
			},
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/thesauri", &openapi3.PathItem{Get: listThesauri, Post: importThesaurus}),
			openapi3.WithPath("/thesauri/{identifier}", &openapi3.PathItem{Get: getThesaurus}),
			openapi3.WithPath("/thesauri/{identifier}/keywords", &openapi3.PathItem{Get: listKeywords}),
			openapi3.WithPath("/labels", &openapi3.PathItem{Post: labels}),
		),
	}
	return spec
}
