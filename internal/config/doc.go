// Package config loads the news channel configuration from multiple sources
// (YAML file, .env file, environment variables, CLI flags) with precedence:
// CLI flags > Environment variables > YAML config > Defaults. Credentials are
// read from the environment only. The result is a plain value grouped into
// API credentials, model parameters, news sources, storage, workflow timing
// and status server settings.
package config
