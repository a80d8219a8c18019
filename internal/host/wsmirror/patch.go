// Package wsmirror streams DOM mutations to websocket clients. A Document
// wraps any dom.Document and turns every successful mutation into a Patch;
// browsers replay the patches against their own DOM and send user events
// back.
package wsmirror

// Op names a patch operation.
type Op string

const (
	OpHello      Op = "hello"
	OpCreate     Op = "create"
	OpAppend     Op = "append"
	OpInsert     Op = "insert"
	OpRemove     Op = "remove"
	OpReplace    Op = "replace"
	OpSetAttr    Op = "set_attr"
	OpRemoveAttr Op = "remove_attr"
	OpSetText    Op = "set_text"
	OpListen     Op = "listen"
	OpUnlisten   Op = "unlisten"
)

// Reserved node ids.
const (
	HeadID = "head"
	BodyID = "body"
)

// Patch is one mutation. Node ids are opaque strings; "head" and "body" are
// reserved for the document's own elements.
type Patch struct {
	Seq    uint64 `json:"seq"`
	Op     Op     `json:"op"`
	ID     string `json:"id,omitempty"`
	Parent string `json:"parent,omitempty"`
	Ref    string `json:"ref,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
	Tag    string `json:"tag,omitempty"`
	NS     string `json:"ns,omitempty"`
}

// ClientEvent is sent by a browser when a listened event fires on node ID.
type ClientEvent struct {
	ID    string            `json:"id"`
	Event string            `json:"event"`
	Data  map[string]string `json:"data,omitempty"`
}
