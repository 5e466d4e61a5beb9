package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
)

const (
	DefaultOwner      = "anonymous"
	errInvalidTypeFmt = "invalid file type: %s"
)

type Project struct {
	ID           string    `json:"id" bson:"id" yaml:"id"`
	Name         string    `json:"name" bson:"name" yaml:"name"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty" yaml:"description,omitempty"`
	Files        []File    `json:"files" bson:"files" yaml:"files"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt" yaml:"createdAt"`
	LastModified time.Time `json:"lastModified" bson:"lastModified" yaml:"lastModified"`
	IsPublic     bool      `json:"isPublic" bson:"isPublic" yaml:"isPublic"`
	UserID       string    `json:"userId" bson:"userId" yaml:"userId"`
}

type File struct {
	ID         string    `json:"id" bson:"id" yaml:"id"`
	Name       string    `json:"name" bson:"name" yaml:"name"`
	Content    string    `json:"content" bson:"content" yaml:"content"`
	Type       FileType  `json:"type" bson:"type" yaml:"type"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt" yaml:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt" bson:"modifiedAt" yaml:"modifiedAt"`
}

type FileType string

const (
	FileTypeComponent FileType = "component"
	FileTypeStyle     FileType = "style"
	FileTypeConfig    FileType = "config"
	FileTypeOther     FileType = "other"
)

// Validate validates the file type
func (t FileType) Validate() error {
	switch t {
	case FileTypeComponent, FileTypeStyle, FileTypeConfig, FileTypeOther:
		return nil
	default:
		return fmt.Errorf(errInvalidTypeFmt, t)
	}
}

// ClassifyFile derives the type tag from the file name's extension.
func ClassifyFile(name string) FileType {
	switch {
	case strings.HasSuffix(name, ".tsx"), strings.HasSuffix(name, ".jsx"):
		return FileTypeComponent
	case strings.HasSuffix(name, ".css"):
		return FileTypeStyle
	case strings.HasSuffix(name, ".json"):
		return FileTypeConfig
	default:
		return FileTypeOther
	}
}

// NewID returns a time-ordered unique identifier for projects and files.
func NewID() string {
	return xid.New().String()
}

// NewFile builds a file stamped with now.
func NewFile(id, name, content string, now time.Time) File {
	return File{
		ID:         id,
		Name:       name,
		Content:    content,
		Type:       ClassifyFile(name),
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// Clone returns a deep copy so callers can mutate files without aliasing.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	c.Files = append([]File(nil), p.Files...)
	return &c
}

// FileInput is the client-supplied shape of a file; missing fields are defaulted.
type FileInput struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Content    string     `json:"content"`
	Type       FileType   `json:"type,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	ModifiedAt *time.Time `json:"modifiedAt,omitempty"`
}

type CreateProjectInput struct {
	Name        string
	Description *string
	Files       []FileInput
	IsPublic    *bool
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
	Files       *[]FileInput
	IsPublic    *bool
}

// ListFilter narrows List results.
type ListFilter struct {
	PublicOnly bool
	Limit      int
}

// ProjectUpdate is the normalized set of changes handed to a repository.
type ProjectUpdate struct {
	Name         *string
	Description  *string
	Files        *[]File
	IsPublic     *bool
	LastModified time.Time
}

// Apply writes the provided fields onto p.
func (u ProjectUpdate) Apply(p *Project) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Files != nil {
		p.Files = append([]File(nil), (*u.Files)...)
	}
	if u.IsPublic != nil {
		p.IsPublic = *u.IsPublic
	}
	p.LastModified = u.LastModified
}
