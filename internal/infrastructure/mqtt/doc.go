// Package mqtt publishes audit event notifications to an MQTT broker.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Publish-only messaging with QoS guarantees
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The broker is optional: when mqtt.enabled is false in config, the
// toolkit never connects and comparison results are only persisted to
// the audit database. When enabled, each completed comparison run is
// published to toolkit/audit/<unit-ip> so dashboards and site
// monitoring can react to configuration drift as it is detected.
//
// # Security Considerations
//
//   - TLS should be enabled for anything beyond local development
//   - Credentials are set via TOOLKIT_MQTT_USERNAME/PASSWORD
//   - Payloads carry unit identities and difference messages only
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	topic := mqtt.Topics{}.AuditCompleted(run.NetworkUnit.IPAddress)
//	err = client.PublishJSON(topic, run)
package mqtt
