// Package banner renders the startup banner shown on stderr.
package banner

import "fmt"

const art = `                    _       _ _
 __      _____  _ __ __| | __ _| (_) __ _ _ __
 \ \ /\ / / _ \| '__/ _` + "`" + ` |/ _` + "`" + ` | | |/ _` + "`" + ` | '_ \
  \ V  V / (_) | | | (_| | (_| | | | (_| | | | |
   \_/\_/ \___/|_|  \__,_|\__,_|_|_|\__, |_| |_|
                                    |___/
`

// Banner returns the ASCII banner followed by a version line.
func Banner(version string) string {
	return fmt.Sprintf("%s  statistical word alignment  %s\n\n", art, version)
}
