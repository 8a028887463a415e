package main

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Archive  string `arg:"" optional:"" help:"Path to a local documentation archive (skips the managed cache)"`
	Refresh  bool   `help:"Delete the cached documentation and download it again"`
	CacheDir bool   `name:"cache-dir" help:"Print the cache directory and exit"`
}
