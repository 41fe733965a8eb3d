// Command periodic runs a control loop paced by the periodic timer and
// reports its timing behaviour.
//
// Usage:
//
//	periodic run --interval 100ms
//	periodic run 0.1 --count 50 --format yaml
//	periodic bench -n 200 --interval 5ms
//	periodic replay trace.cbor
package main

import "github.com/randomizedcoder/periodic/cmd/periodic/cmd"

func main() {
	cmd.Execute()
}
