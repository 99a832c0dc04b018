// Package config loads the mimic configuration from YAML.
//
// Configuration is optional: every field has a default applied in Go, so a
// missing file yields a fully working setup serving all simulators over
// streamable-http. A config file can change the transport, bind address,
// state directory, and per-simulator settings:
//
//	transport: stdio
//	stateDir: /var/lib/mimic
//	simulators:
//	  github:
//	    stateFile: /tmp/github.json
//	    watch: true
//	  blender:
//	    enabled: false
package config
