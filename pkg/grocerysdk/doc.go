// Package grocerysdk resolves runtime configuration for grocery manager
// binaries and builds the matching grocery.Client.
//
// The runtime mode comes from GROCERY_RUNTIME_MODE:
//
//   - http (default): talk to GROCERY_API_URL, falling back to DefaultBaseURL.
//   - mock: keep items in memory, optionally seeded from GROCERY_MOCK_SEED.
//   - auto: http when GROCERY_API_URL is set, mock otherwise.
package grocerysdk
