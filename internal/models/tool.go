package models

/**
 * Tool description exposed to the dispatch layer
 * @property {string} name - Tool name, e.g. "deploy_war"
 * @property {string} description - Human readable description
 * @property {[]string} params - Required argument names
 */
type ToolInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Params      []string `json:"params,omitempty"`
}
