// Package directive parses the body of a dynamic-embed code block. Parsing
// runs in two stages: Tokenize classifies the directive kind and captures its
// raw parameter, Parse turns the token into a typed Directive value.
package directive
