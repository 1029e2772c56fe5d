// Package widgets provides the text input widgets of the fieldkit toolkit.
//
// The package is organized in two layers. [TextInput] is the imperative
// base: it binds a host input surface to a [platform.TextEditingController]
// and reports raw edits. [ReactiveTextInput] builds on it with a
// value/onValueChanged binding: the widget's Value is the single source of
// truth, user edits stay buffered until committed, and an optional undo
// controller resyncs the buffer after history operations.
//
// [Form], [FormField] and [ReactiveTextFormField] add coordinated
// validation, save, reset, and state restoration on top.
package widgets
