package store

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// MarshalYAML serializes the store with all map keys in sorted order.
// yaml.v3 leaves Go map iteration order unspecified; sorted output
// keeps rotation diffs minimal and byte-for-byte reproducible.
func (f File) MarshalYAML() (interface{}, error) {
	version := &yaml.Node{}
	if err := version.Encode(f.Version); err != nil {
		return nil, err
	}

	team, err := sortedMapNode(f.Team)
	if err != nil {
		return nil, err
	}

	envs := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range sortedKeys(f.Environments) {
		inner, err := sortedMapNode(f.Environments[name])
		if err != nil {
			return nil, err
		}
		envs.Content = append(envs.Content, scalarNode(name), inner)
	}

	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	root.Content = append(root.Content,
		scalarNode("version"), version,
		scalarNode("team"), team,
		scalarNode("environments"), envs,
	)
	return root, nil
}

func sortedMapNode[V any](m map[string]V) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range sortedKeys(m) {
		value := &yaml.Node{}
		if err := value.Encode(m[key]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, scalarNode(key), value)
	}
	return node, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func scalarNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
