package frontmatter

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Parse reads a note's text into a Doc, preserving header field order. Text
// without a leading delimiter line is treated as all body.
func Parse(text string) (*Doc, error) {
	if !strings.HasPrefix(text, Delimiter+"\n") {
		return &Doc{Body: text}, nil
	}

	rest := text[len(Delimiter)+1:]
	idx := strings.Index(rest, "\n"+Delimiter+"\n")
	var header, body string
	switch {
	case strings.HasPrefix(rest, Delimiter+"\n"):
		// Empty header.
		body = rest[len(Delimiter)+1:]
	case idx >= 0:
		header = rest[:idx+1]
		body = rest[idx+len(Delimiter)+2:]
	case strings.HasSuffix(rest, "\n"+Delimiter) || rest == Delimiter:
		header = strings.TrimSuffix(rest, Delimiter)
	default:
		return nil, errors.New("frontmatter: missing closing delimiter")
	}

	doc := &Doc{Body: strings.TrimPrefix(body, "\n")}
	if strings.TrimSpace(header) == "" {
		return doc, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(header), &root); err != nil {
		return nil, errors.Wrap(err, "frontmatter: invalid header")
	}
	if len(root.Content) == 0 {
		return doc, nil
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, errors.New("frontmatter: header is not a key/value block")
	}

	fields, err := fieldsFromMapping(mapping, true)
	if err != nil {
		return nil, err
	}
	doc.Fields = fields
	return doc, nil
}

func fieldsFromMapping(mapping *yaml.Node, allowNesting bool) ([]Field, error) {
	fields := make([]Field, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valNode := mapping.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, errors.New("frontmatter: non-scalar header key")
		}
		value, err := valueFromNode(valNode, allowNesting)
		if err != nil {
			return nil, errors.Wrapf(err, "frontmatter: field %q", keyNode.Value)
		}
		fields = append(fields, Field{Key: keyNode.Value, Value: value})
	}
	return fields, nil
}

func valueFromNode(n *yaml.Node, allowNesting bool) (Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return scalarFromNode(n)
	case yaml.SequenceNode:
		list := make([]Value, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return Value{}, errors.New("list items must be scalars")
			}
			v, err := scalarFromNode(item)
			if err != nil {
				return Value{}, err
			}
			list = append(list, v)
		}
		return Value{Kind: KindList, List: list}, nil
	case yaml.MappingNode:
		if !allowNesting {
			return Value{}, errors.New("objects may only nest one level deep")
		}
		fields, err := fieldsFromMapping(n, false)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindObject, Fields: fields}, nil
	default:
		return Value{}, errors.Errorf("unsupported node kind %d", n.Kind)
	}
}

func scalarFromNode(n *yaml.Node) (Value, error) {
	switch n.Tag {
	case "!!int":
		i, err := strconv.Atoi(n.Value)
		if err != nil {
			return Value{}, errors.WithStack(err)
		}
		return Int(i), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return Value{}, errors.WithStack(err)
		}
		return Bool(b), nil
	case "!!null":
		return Null(), nil
	default:
		return String(n.Value), nil
	}
}
