package router

import (
	"regexp"
	"sort"
	"strings"

	"github.com/khushparag/agentic-learning-coach/core"
)

// Keyword is one weighted phrase contributing to an intent's score.
type Keyword struct {
	Phrase string
	Weight float64
}

// KeywordTable maps each intent to its curated, weighted keyword list.
// Product-tunable per spec §9's open question — never hardcoded inside the
// classifier itself.
type KeywordTable map[core.Intent][]Keyword

// Classification is the classifier's verdict for one message.
type Classification struct {
	Intent              core.Intent
	TargetAgent         core.AgentType
	Confidence          float64
	AlternativeIntents  []core.Intent
}

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// Classifier scores free text against a curated keyword table. It never
// calls an LLM; see spec §4.3's rationale for small, auditable, offline
// intent classification.
type Classifier struct {
	table      *Table
	keywords   KeywordTable
	declOrder  []core.Intent
}

// NewClassifier builds a Classifier. declOrder breaks ties by declaration
// order per spec §4.3; if empty, the keyword table's DefaultKeywordTable
// order (core.RoutableIntents) is used, and any table intents outside
// core.RoutableIntents follow in map order.
func NewClassifier(table *Table, keywords KeywordTable, declOrder []core.Intent) *Classifier {
	if len(declOrder) == 0 {
		declOrder = make([]core.Intent, 0, len(keywords))
		listed := make(map[core.Intent]bool, len(keywords))
		for _, intent := range core.RoutableIntents {
			if _, ok := keywords[intent]; ok {
				declOrder = append(declOrder, intent)
				listed[intent] = true
			}
		}
		for intent := range keywords {
			if !listed[intent] {
				declOrder = append(declOrder, intent)
			}
		}
	}
	return &Classifier{table: table, keywords: keywords, declOrder: declOrder}
}

// Classify scores message against every intent's keyword list. Empty or
// fully-unmatched input yields a zero-value Classification with Intent=="".
func (c *Classifier) Classify(message string) Classification {
	tokens := tokenize(message)
	if len(tokens) == 0 {
		return Classification{}
	}
	tokenSet := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok]++
	}

	type scored struct {
		intent core.Intent
		score  float64
	}
	var results []scored
	var total float64

	for _, intent := range c.declOrder {
		keywords, ok := c.keywords[intent]
		if !ok {
			continue
		}
		var score float64
		for _, kw := range keywords {
			matches := matchCount(tokenSet, message, kw.Phrase)
			if matches > 0 {
				score += kw.Weight * float64(matches)
			}
		}
		if score > 0 {
			results = append(results, scored{intent: intent, score: score})
			total += score
		}
	}

	if len(results) == 0 {
		return Classification{}
	}

	// Stable sort by descending score; ties keep declaration order because
	// sort.SliceStable preserves the original (declaration) relative order.
	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })

	top := results[0]
	agentType, _ := c.table.Route(top.intent)

	alternatives := make([]core.Intent, 0, len(results)-1)
	for _, r := range results[1:] {
		alternatives = append(alternatives, r.intent)
	}

	return Classification{
		Intent:             top.intent,
		TargetAgent:        agentType,
		Confidence:         top.score / total,
		AlternativeIntents: alternatives,
	}
}

// matchCount counts occurrences of a keyword phrase. Single-token phrases
// are matched against the tokenized set (word-boundary safe); multi-token
// phrases are matched as a normalized substring of the whole message, since
// tokenizing would lose their internal ordering.
func matchCount(tokenSet map[string]int, message, phrase string) int {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return 0
	}
	if !strings.ContainsAny(phrase, " \t") {
		return tokenSet[phrase]
	}
	return strings.Count(strings.ToLower(message), phrase)
}

func tokenize(message string) []string {
	return tokenPattern.FindAllString(strings.ToLower(message), -1)
}
