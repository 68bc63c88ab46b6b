// Package catalog holds the brand to model mapping offered by the order form.
//
// A Catalog is immutable once built. The compiled-in Default catalog lists the
// brands the desk sells out of the box; a YAML file can replace it:
//
//	brands:
//	  - brand: Apple
//	    models:
//	      - iPhone 15 Pro Max
//	      - iPhone 15
//	  - brand: Samsung
//	    models:
//	      - Galaxy S24 Ultra
//
// Lookups never fail. ModelsFor returns an empty list for an unknown or empty
// brand, which is what the form shows before a brand has been picked.
package catalog
