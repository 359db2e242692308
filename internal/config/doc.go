// Package config loads weave.yaml or weave.json.
//
// Example weave.yaml:
//
//	server:
//	  host: 0.0.0.0
//	  port: 8080
//	frame:
//	  interval: 16ms
//	log:
//	  level: debug
//	  format: json
//	metrics:
//	  enabled: true
//	publish:
//	  bucket: my-snapshots
//	  prefix: todo
//	  region: eu-west-1
//
// Missing fields take the defaults from New. WEAVE_PORT and WEAVE_LOG_LEVEL
// override the file.
package config
