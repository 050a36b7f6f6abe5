package draft

import (
	"fmt"
	"strings"

	"github.com/borgmon/jumpin/pkg/models"
)

// Field names one editable draft field
type Field string

const (
	FieldTitle       Field = "title"
	FieldDate        Field = "date"
	FieldStartTime   Field = "startTime"
	FieldPlatform    Field = "platform"
	FieldLink        Field = "link"
	FieldDescription Field = "description"
)

// Fields lists every editable field in form order
var Fields = []Field{FieldTitle, FieldDate, FieldStartTime, FieldPlatform, FieldLink, FieldDescription}

// ParseField looks a field up by name, ignoring case
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if strings.EqualFold(string(f), strings.TrimSpace(name)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func (f Field) set(d models.Draft, value string) (models.Draft, error) {
	switch f {
	case FieldTitle:
		d.Title = value
	case FieldDate:
		d.Date = value
	case FieldStartTime:
		d.StartTime = value
	case FieldPlatform:
		d.Platform = value
	case FieldLink:
		d.Link = value
	case FieldDescription:
		d.Description = value
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	return d, nil
}
