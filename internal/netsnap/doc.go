// Package netsnap decodes network snapshot documents.
//
// A snapshot is the JSON capture of one unit's wire-decoded
// configuration, produced by the network scanner. Field names are the
// wire decoder's camelCase names; the comparators' field tables own
// the mapping back to the project database's names.
//
// The decoder is tolerant of missing sections: a snapshot taken from a
// unit with no curtains simply yields an empty curtain tree, which the
// engine treats as an absent domain. Only the unit identity section is
// mandatory.
//
// # Document shape
//
//	{
//	  "unit": {"boardType": "RCU-8", "canId": "12", "ipAddress": "192.168.1.10",
//	           "mode": "master", "canLoad": true, "recoveryMode": false},
//	  "rs485": [...], "inputs": [...], "outputs": [...],
//	  "scenes": [...], "multiScenes": [...], "schedules": [...],
//	  "curtains": [...], "knx": [...], "sequences": [...]
//	}
package netsnap
