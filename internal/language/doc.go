// Package language normalizes vocal language input to BCP-47 tags.
//
// Manifests and operators write languages in whatever form comes
// naturally (a tag, an ISO code, a plain English name); everything is
// resolved here so the rest of the codebase only ever sees canonical
// tags.
package language
