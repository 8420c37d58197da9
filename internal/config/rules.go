package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// sectionsDocument picks the domain sections out of the config file. They are
// kept as nodes so key order and case survive.
type sectionsDocument struct {
	AccountAlias yaml.Node `yaml:"account_alias"`
	PayeeRegex   yaml.Node `yaml:"payee_regex"`
}

type sections struct {
	aliases map[string]string
	rules   []PayeeRuleSpec
}

func parseSections(data []byte) (*sections, error) {
	var doc sectionsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config sections: %w", err)
	}

	aliases, err := parseAliases(&doc.AccountAlias)
	if err != nil {
		return nil, err
	}
	rules, err := parsePayeeRules(&doc.PayeeRegex)
	if err != nil {
		return nil, err
	}
	return &sections{aliases: aliases, rules: rules}, nil
}

func isEmpty(node *yaml.Node) bool {
	return node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

func parseAliases(node *yaml.Node) (map[string]string, error) {
	aliases := map[string]string{}
	if isEmpty(node) {
		return aliases, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("account_alias (line %d): expected a mapping of account to alias", node.Line)
	}
	if err := node.Decode(&aliases); err != nil {
		return nil, fmt.Errorf("account_alias: %w", err)
	}
	return aliases, nil
}

// parsePayeeRules flattens payee_regex into rule specs. Each label maps to a
// pattern or a list of patterns.
func parsePayeeRules(node *yaml.Node) ([]PayeeRuleSpec, error) {
	if isEmpty(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("payee_regex (line %d): expected a mapping of payee to patterns", node.Line)
	}

	var rules []PayeeRuleSpec
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("payee_regex (line %d): payee label must be a string", key.Line)
		}
		label := key.Value

		switch value.Kind {
		case yaml.ScalarNode:
			if value.Tag == "!!null" {
				return nil, fmt.Errorf("payee_regex.%s (line %d): no patterns given", label, value.Line)
			}
			rules = append(rules, PayeeRuleSpec{Label: label, Pattern: value.Value})
		case yaml.SequenceNode:
			for _, item := range value.Content {
				if item.Kind != yaml.ScalarNode || item.Tag == "!!null" {
					return nil, fmt.Errorf("payee_regex.%s (line %d): pattern must be a string", label, item.Line)
				}
				rules = append(rules, PayeeRuleSpec{Label: label, Pattern: item.Value})
			}
		default:
			return nil, fmt.Errorf("payee_regex.%s (line %d): expected a pattern or a list of patterns", label, value.Line)
		}
	}
	return rules, nil
}
