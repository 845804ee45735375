// Package hostoptions reads the hosting settings for a reverse-proxy process
// shim from a viper configuration source: which executable to launch, how it
// is hosted, where stdout logging goes, and whether detailed error pages are
// enabled based on the environment. It only extracts and checks fields; it
// never launches the process.
package hostoptions
