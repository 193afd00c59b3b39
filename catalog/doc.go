// Package catalog loads rights and template entries from YAML and imports
// them into a content repository.
//
// A catalog file has two top-level lists:
//
//	rights:
//	  - id: 1
//	    title: Tenant Rights & Protections
//	    summary: ...
//	    tags: [housing, tenant]
//	    category: housing
//	    detailed_content: |
//	      ...
//	templates:
//	  - title: Repair Request Notice
//	    category: Housing
//	    price: 0
//	    body: |
//	      ...
//
// Entries without an id get one derived from their kind and title. Default
// returns the catalog built into the binary.
package catalog
