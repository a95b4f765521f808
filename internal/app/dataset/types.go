package dataset

import "github.com/osvaldoandrade/datasetdb/internal/domain"

// Document is the caller-supplied dataset definition, decoded after schema
// validation. Field shapes mirror the base JSON schema.
type Document struct {
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Public      bool            `json:"public"`
	Classes     []ClassDocument `json:"classes"`
}

type ClassDocument struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Recordings  []string `json:"recordings"`
}

// DocumentFromDataset renders a stored dataset back into document form,
// dropping generated ids and ownership fields. Used by the patch flow and by
// callers that want the round-trippable shape.
func DocumentFromDataset(ds domain.Dataset) Document {
	doc := Document{
		Name:        ds.Name,
		Description: ds.Description,
		Public:      ds.Public,
		Classes:     make([]ClassDocument, 0, len(ds.Classes)),
	}
	for _, cls := range ds.Classes {
		recordings := cls.Recordings
		if recordings == nil {
			recordings = []string{}
		}
		doc.Classes = append(doc.Classes, ClassDocument{
			Name:        cls.Name,
			Description: cls.Description,
			Recordings:  recordings,
		})
	}
	return doc
}
