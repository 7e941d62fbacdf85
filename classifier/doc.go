// Package classifier finds where request parameters and responses live in
// a pair of Swagger 2.0 documents.
//
// A change reported by package differ is only relevant to a compatibility
// rule when it happens inside a request parameter or a response. Schemas in
// definitions are reached through $ref from those places, and the same
// schema may also sit unused in definitions; classifying by location keeps
// changes to unused definitions out of the results.
//
//	params, err := classifier.NewRequestParameters(oldSpec, newSpec).Walk()
//	if err != nil {
//	    return err
//	}
//	if params.ContainsPrefixOf(fact.At()) {
//	    // the change affects a request
//	}
package classifier
