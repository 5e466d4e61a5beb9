package projects

import (
	"cipherstudio/internal/domain/project"
	apperrors "cipherstudio/pkg/errors"
	"cipherstudio/pkg/validator"
	"fmt"
	"strings"
	"time"
)

const (
	msgDuplicateFileID = "Duplicate file id"
	msgInvalidFileType = "File type must be one of component, style, config, other"
)

type validation struct {
	*apperrors.ValidationError
}

func newValidation() validation {
	return validation{&apperrors.ValidationError{}}
}

func (v validation) check(field string, value any, err error) {
	if err != nil {
		v.Add(field, err.Error(), value)
	}
}

// normalizeFiles trims names, derives missing types and fills missing
// timestamps. Failures are recorded on v under files[i].<field>.
func normalizeFiles(inputs []project.FileInput, now time.Time, v validation) []project.File {
	files := make([]project.File, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))

	for i, in := range inputs {
		prefix := fmt.Sprintf("files[%d]", i)

		id := strings.TrimSpace(in.ID)
		if err := validator.FileID(id); err != nil {
			v.Add(prefix+".id", err.Error(), in.ID)
		} else if _, dup := seen[id]; dup {
			v.Add(prefix+".id", msgDuplicateFileID, in.ID)
		}
		seen[id] = struct{}{}

		name := strings.TrimSpace(in.Name)
		v.check(prefix+".name", in.Name, validator.FileName(name))

		fileType := in.Type
		if fileType == "" {
			fileType = project.ClassifyFile(name)
		} else if err := fileType.Validate(); err != nil {
			v.Add(prefix+".type", msgInvalidFileType, string(in.Type))
		}

		f := project.File{
			ID:         id,
			Name:       name,
			Content:    in.Content,
			Type:       fileType,
			CreatedAt:  now,
			ModifiedAt: now,
		}
		if in.CreatedAt != nil {
			f.CreatedAt = in.CreatedAt.UTC()
		}
		if in.ModifiedAt != nil {
			f.ModifiedAt = in.ModifiedAt.UTC()
		}

		files = append(files, f)
	}

	return files
}
