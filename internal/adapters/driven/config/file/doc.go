// Package file loads CLI configuration from a TOML file with environment
// variable overrides. The file lives at ~/.conflu/config.toml by default;
// CONFLUENCE_URL, CONFLUENCE_EMAIL and CONFLUENCE_TOKEN (or their
// ATLASSIAN_* aliases) override the file, so a config file is optional.
package file
