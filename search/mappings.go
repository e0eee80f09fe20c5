package search

import (
	"github.com/stevenferrer/solr-go"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/skos"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurus"
)

func labelField(lang string) string {
	return "label_" + lang
}

func collectionSchema() []solr.Field {
	fields := []solr.Field{
		{Name: "thesaurus", Type: "string", Indexed: true, Stored: true},
		{Name: "thesaurusTitle", Type: "string", Indexed: false, Stored: true},
		{Name: "about", Type: "string", Indexed: true, Stored: true},
		{Name: "altLabel", Type: "text_general", Indexed: true, Stored: true},
		{Name: "lang", Type: "string", Indexed: true, Stored: true, MultiValued: true},
	}
	for _, lang := range skos.SupportedLanguages {
		fields = append(fields, solr.Field{Name: labelField(lang), Type: "text_general", Indexed: true, Stored: true})
	}
	return fields
}

// keywordDocument builds the search document of a keyword.
func keywordDocument(t *thesaurus.Thesaurus, keyword thesaurus.LoadedKeyword) document {
	doc := document{
		"id":             keyword.ID.String(),
		"thesaurus":      t.Identifier,
		"thesaurusTitle": t.Title,
		"about":          keyword.About,
		"altLabel":       keyword.AltLabel,
	}
	langs := make([]any, 0, len(keyword.Labels))
	for _, label := range keyword.Labels {
		doc[labelField(label.Lang)] = label.Label
		langs = append(langs, label.Lang)
	}
	doc["lang"] = langs
	return doc
}
