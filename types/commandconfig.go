package types

import (
	"encoding/json"
	"fmt"
)

type CommandConfig struct {
	RPC         string `json:"rpc"`
	Network     string `json:"network"`
	BlockHash   string `json:"blockhash"`
	BlockNumber string `json:"blocknumber"`
	Voter       string `json:"voter"`
	Balances    string `json:"balances"`
	ChainID     string `json:"chainid"`
	Layout      string `json:"layout"`
	Concurrency int    `json:"concurrency"`
	LogLevel    string `json:"loglevel"`
	LogJson     bool   `json:"logjson"`
	Debug       string `json:"debug"`
}

// String method returns the CommandConfig as a formatted JSON string
func (c *CommandConfig) String() string {
	jsonData, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error marshaling JSON: %v", err)
	}
	return string(jsonData)
}
