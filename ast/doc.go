/*
Package ast is the in-memory schema graph every s2dm stage works on.

The names of the Go types match the names used by the [GraphQL specification]
wherever possible. Unlike many GraphQL libraries the graph keeps every directive
application found in the source on the node it was attached to, so custom
vocabulary such as @instanceTag or @range survives a parse and print cycle.

[GraphQL specification]: https://spec.graphql.org
*/
package ast
