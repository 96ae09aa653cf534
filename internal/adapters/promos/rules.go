// Package promos evaluates promo codes against the cart. Rules live in a
// YAML pack; eligibility conditions are jsonlogic expressions over the cart
// figures, so new promotions ship without code changes.
package promos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/diegoholiveira/jsonlogic/v3"
	"gopkg.in/yaml.v3"

	"github.com/techhubpro/storefront/internal/domain"
)

type Rule struct {
	Code        string         `yaml:"code"`
	Description string         `yaml:"description"`
	When        map[string]any `yaml:"when"`
	Percent     float64        `yaml:"percent"`
	Amount      float64        `yaml:"amount"`
}

type pack struct {
	Rules []Rule `yaml:"rules"`
}

type Engine struct {
	rules []Rule
}

func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

func LoadPack(path string) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse promo pack: %w", err)
	}
	return NewEngine(p.Rules), nil
}

// Discount resolves a code against the cart. An unknown code, or one whose
// condition does not hold, yields zero. The discount never exceeds the cart
// subtotal.
func (e *Engine) Discount(ctx context.Context, code string, cart domain.CartState) (float64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return 0, nil
	}
	for _, r := range e.rules {
		if !strings.EqualFold(r.Code, code) {
			continue
		}
		if r.When != nil {
			ok, err := eligible(r.When, code, cart)
			if err != nil {
				return 0, err
			}
			if !ok {
				return 0, nil
			}
		}
		d := r.Amount + cart.TotalAmount*r.Percent/100
		if d > cart.TotalAmount {
			d = cart.TotalAmount
		}
		if d < 0 {
			d = 0
		}
		return d, nil
	}
	return 0, nil
}

func eligible(rule map[string]any, code string, cart domain.CartState) (bool, error) {
	ruleJSON, err := json.Marshal(rule)
	if err != nil {
		return false, fmt.Errorf("promo rule: %w", err)
	}
	dataJSON, err := json.Marshal(map[string]any{
		"code":          code,
		"subtotal":      cart.TotalAmount,
		"totalQuantity": cart.TotalQuantity,
	})
	if err != nil {
		return false, err
	}
	var result bytes.Buffer
	if err := jsonlogic.Apply(bytes.NewReader(ruleJSON), bytes.NewReader(dataJSON), &result); err != nil {
		return false, fmt.Errorf("promo rule %q: %w", code, err)
	}
	return strings.TrimSpace(result.String()) == "true", nil
}
