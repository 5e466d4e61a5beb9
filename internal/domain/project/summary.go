package project

import "time"

// Summary is the content-light projection returned by list endpoints.
type Summary struct {
	ID           string        `json:"id" bson:"id" yaml:"id"`
	Name         string        `json:"name" bson:"name" yaml:"name"`
	Description  string        `json:"description,omitempty" bson:"description,omitempty" yaml:"description,omitempty"`
	Files        []FileSummary `json:"files" bson:"files" yaml:"files"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt" yaml:"createdAt"`
	LastModified time.Time     `json:"lastModified" bson:"lastModified" yaml:"lastModified"`
	IsPublic     bool          `json:"isPublic" bson:"isPublic" yaml:"isPublic"`
	UserID       string        `json:"userId" bson:"userId" yaml:"userId"`
}

type FileSummary struct {
	ID         string    `json:"id" bson:"id" yaml:"id"`
	Name       string    `json:"name" bson:"name" yaml:"name"`
	Type       FileType  `json:"type" bson:"type" yaml:"type"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt" yaml:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt" bson:"modifiedAt" yaml:"modifiedAt"`
}

func (p *Project) Summary() *Summary {
	files := make([]FileSummary, 0, len(p.Files))
	for _, f := range p.Files {
		files = append(files, FileSummary{
			ID:         f.ID,
			Name:       f.Name,
			Type:       f.Type,
			CreatedAt:  f.CreatedAt,
			ModifiedAt: f.ModifiedAt,
		})
	}

	return &Summary{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Files:        files,
		CreatedAt:    p.CreatedAt,
		LastModified: p.LastModified,
		IsPublic:     p.IsPublic,
		UserID:       p.UserID,
	}
}
