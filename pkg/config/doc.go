// Package config loads optional defaults for sr from a config file.
//
//	            +-------------+
//	            |   Config    |
//	            | (Defaults)  |
//	            +------+------+
//	                   |
//	      +-----------+-----------+
//	      |                       |
//	+-----+-----+           +----+----+
//	|   YAML    |           |   HCL   |
//	| Parser    |           | Parser  |
//	+-----------+           +---------+
//
// 🎯 Purpose:
// - Supplies defaults for flags (backup suffix, quiet, verbose, glob)
// - Holds exclude patterns for glob expansion
// - Flags given on the command line always win
//
// 🔄 Flow:
// 1. Discover finds .srrc.hcl, .srrc.yaml or .srrc.yml in the working directory
// 2. Load picks a parser from the registry by file extension
// 3. Validate checks the exclude patterns
//
// 🔍 Example (.srrc.hcl):
//
//	backup_suffix = ".bak"
//	quiet         = false
//	glob          = true
//	exclude       = ["**/vendor/**", "**/*.min.js"]
package config
