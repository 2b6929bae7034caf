package model

import (
	"errors"
	"strings"
)

// ErrEmptyTopic is returned when an analysis is requested without a topic
var ErrEmptyTopic = errors.New("topic must not be empty")

// Topic is a named search query offered to the user
type Topic struct {
	Name  string `json:"name" yaml:"name"`
	Query string `json:"query" yaml:"query"`
}

// PresetTopics are the queries offered by default
var PresetTopics = []Topic{
	{Name: "Aptos Ecosystem", Query: `"Aptos" AND "Ecosystem"`},
	{Name: "DeFi Trends", Query: `"DeFi" AND ("Aptos" OR "Solana")`},
	{Name: "NFTs & Gaming", Query: `"NFT" OR "Web3 Gaming"`},
	{Name: "L1 Regulation", Query: `"Blockchain Layer 1" Regulation`},
}

// ResolveTopic maps a preset name to its query. Anything else is used as a raw query.
func ResolveTopic(s string) string {
	s = strings.TrimSpace(s)
	for _, t := range PresetTopics {
		if strings.EqualFold(t.Name, s) {
			return t.Query
		}
	}
	return s
}
