package jce

import "github.com/sirupsen/logrus"

// log is the package-level logger. It is never invoked on the hot
// encode/decode path (see CompileSchema, EncodeWithSchema, DecodeWithSchema)
// - only registry lifecycle events and the offline tracer (DecodeTrace)
// log; ProbeStruct does not log.
var log = logrus.WithField("component", "jce")

func logSchemaReregistered(id SchemaID) {
	log.WithField("schema_id", id).Warn("schema re-registered, replacing previous definition")
}

func logProbeField(path string, typ WireType) {
	log.WithFields(logrus.Fields{"path": path, "wire_type": typ.String()}).Debug("probe: field visited")
}
