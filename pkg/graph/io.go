package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/matzehuels/flowter/pkg/errors"
)

// =============================================================================
// Formats
// =============================================================================

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists every supported document format.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// ParseFormat converts a format name such as "yml" into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported document format: %q (must be json, yaml or toml)", s)
}

// DetectFormat picks the format from a file extension.
func DetectFormat(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot detect format of %q: no file extension", path)
	}
	return ParseFormat(ext)
}

// =============================================================================
// Reading
// =============================================================================

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() { validate = validator.New() })
	return validate
}

// ReadDocumentFile reads and validates the document at path. The format is
// taken from the file extension.
func ReadDocumentFile(path string) (Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return DecodeDocument(data, format)
}

// ReadDocument decodes a document from r.
func ReadDocument(r io.Reader, format Format) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	return DecodeDocument(data, format)
}

// DecodeDocument decodes and validates a document.
func DecodeDocument(data []byte, format Format) (Document, error) {
	var doc Document
	v := structValidator()

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json document")
		}
		if err := v.Struct(doc); err != nil {
			return Document{}, validationError(err)
		}

	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data), yaml.Validator(v), yaml.DisallowUnknownField())
		if err := dec.Decode(&doc); err != nil {
			// The decoder folds validation failures into syntax errors.
			// A plain decode tells the two apart.
			var plain Document
			if yaml.UnmarshalWithOptions(data, &plain, yaml.DisallowUnknownField()) == nil {
				if verr := v.Struct(plain); verr != nil {
					return Document{}, validationError(verr)
				}
			}
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml document")
		}

	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
		if err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml document")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Document{}, errors.New(errors.ErrCodeInvalidFormat, "decode toml document: unknown key %q", undecoded[0].String())
		}
		if err := v.Struct(doc); err != nil {
			return Document{}, validationError(err)
		}

	default:
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format: %q", format)
	}

	return doc, nil
}

// validationError reports the first failed constraint as INVALID_INPUT.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid document")
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return errors.New(errors.ErrCodeInvalidInput, "invalid document: %s: failed %q (%s), got %v", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid document: %s: failed %q", fe.Namespace(), fe.Tag())
}

// =============================================================================
// Writing
// =============================================================================

// MarshalDocument encodes d in the given format.
func MarshalDocument(d Document, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(&buf, d, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocument encodes d to w in the given format.
func WriteDocument(w io.Writer, d Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		data, err := yaml.MarshalWithOptions(d, yaml.IndentSequence(true))
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(d); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported document format: %q", format)
	}
	return nil
}
