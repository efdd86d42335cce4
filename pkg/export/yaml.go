package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/bencoding/bencoding-go/pkg/bencode"
	"github.com/bencoding/bencoding-go/pkg/wire"
)

// YAML tags used for rendering.
const (
	tagInt    = "!!int"
	tagStr    = "!!str"
	tagBinary = "!!binary"
	tagNull   = "!!null"
	tagSeq    = "!!seq"
	tagMap    = "!!map"
)

// YAML renders v as a YAML document. Dictionary keys keep their order and
// strings that are not valid UTF-8 are written as !!binary base64.
func YAML(v bencode.Value) ([]byte, error) {
	node, err := Node(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Node converts v into a yaml.Node tree.
func Node(v bencode.Value) (*yaml.Node, error) {
	return node(v, make(map[bencode.Value]struct{}))
}

func node(v bencode.Value, active map[bencode.Value]struct{}) (*yaml.Node, error) {
	switch v.(type) {
	case *bencode.List, *bencode.Dictionary:
		if _, ok := active[v]; ok {
			return nil, ErrCycle
		}
		active[v] = struct{}{}
		defer delete(active, v)
	}

	switch v := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagNull, Value: "null"}, nil
	case *bencode.Integer:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagInt, Value: strconv.FormatInt(v.Value(), 10)}, nil
	case *bencode.String:
		return bytesNode(v.Value()), nil
	case *bencode.List:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: tagSeq}
		for _, item := range v.All() {
			c, err := node(item, active)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case *bencode.Dictionary:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: tagMap}
		for k, item := range v.All() {
			c, err := node(item, active)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, bytesNode([]byte(k)), c)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
	}
}

func bytesNode(b []byte) *yaml.Node {
	if utf8.Valid(b) {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: string(b)}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagBinary, Value: base64.StdEncoding.EncodeToString(b)}
}

// Limits applied by ParseYAML. Aliases are expanded into independent
// copies, so MaxYAMLNodes bounds the expanded tree, not the document text.
const (
	MaxYAMLDepth = wire.DefaultMaxDepth
	MaxYAMLNodes = 1 << 20
)

// ParseYAML reads a single YAML or JSON document into a value tree.
// Integers, strings, !!binary scalars, sequences and mappings with string
// or binary keys are accepted; floats, booleans and nulls are not. An
// alias that refers to one of its own ancestors is reported as ErrCycle.
func ParseYAML(data []byte) (bencode.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrUnsupported)
	}
	p := &nodeParser{active: make(map[*yaml.Node]bool)}
	return p.value(doc.Content[0], 0)
}

type nodeParser struct {
	active map[*yaml.Node]bool
	nodes  int
}

func (p *nodeParser) value(n *yaml.Node, depth int) (bencode.Value, error) {
	if depth >= MaxYAMLDepth {
		return nil, fmt.Errorf("line %d: %w: depth exceeds %d", n.Line, ErrTooLarge, MaxYAMLDepth)
	}
	if n.Kind == yaml.AliasNode {
		// An alias target still being expanded is one of our ancestors.
		if n.Alias == nil || p.active[n.Alias] {
			return nil, fmt.Errorf("line %d: alias *%s: %w", n.Line, n.Value, ErrCycle)
		}
		return p.value(n.Alias, depth)
	}

	p.nodes++
	if p.nodes > MaxYAMLNodes {
		return nil, fmt.Errorf("line %d: %w: more than %d nodes", n.Line, ErrTooLarge, MaxYAMLNodes)
	}
	if n.Anchor != "" {
		p.active[n] = true
		defer delete(p.active, n)
	}

	switch n.Kind {
	case yaml.ScalarNode:
		b, err := scalarBytes(n)
		if err == nil {
			return bencode.NewString(b), nil
		}
		if n.ShortTag() != tagInt {
			return nil, err
		}
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return bencode.NewInteger(i), nil
	case yaml.SequenceNode:
		l := bencode.NewList()
		for _, c := range n.Content {
			v, err := p.value(c, depth+1)
			if err != nil {
				return nil, err
			}
			l.PushBack(v)
		}
		return l, nil
	case yaml.MappingNode:
		d := bencode.NewDictionary()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := scalarBytes(n.Content[i])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Content[i].Line, ErrInvalidKey)
			}
			if d.HasKey(string(k)) {
				return nil, fmt.Errorf("line %d: %w: %q", n.Content[i].Line, ErrDuplicate, k)
			}
			v, err := p.value(n.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			d.SetValue(string(k), v)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("line %d: %w: kind %d", n.Line, ErrUnsupported, n.Kind)
	}
}

// scalarBytes returns the content of a !!str or !!binary scalar.
func scalarBytes(n *yaml.Node) ([]byte, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: %w", n.Line, ErrUnsupported)
	}
	switch n.ShortTag() {
	case tagStr:
		return []byte(n.Value), nil
	case tagBinary:
		b, err := base64.StdEncoding.DecodeString(n.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("line %d: %w: %s", n.Line, ErrUnsupported, n.ShortTag())
	}
}
