// Package technote resolves the metadata of a technote, a web-native
// technical document, and renders it for the document build.
//
// # Quick Start
//
// Open the technote directory, read the title and abstract from the root
// content file, and print the citation tags:
//
//	p, err := technote.Open(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := p.Discover(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(p.Context().HeadTags())
//
// # Metadata Pipeline
//
// Metadata flows through these stages:
//
//  1. technote.toml is decoded and validated (ParseConfig, LoadConfig)
//  2. Factory.Build turns the configuration into Metadata, applying defaults
//  3. NewContext wraps the Metadata for templating
//  4. Content discovery supplies a missing title and the abstract
//  5. HighwireTags and OpenGraphTags render the completed metadata
//
// The title set in technote.toml always wins over the one found in content.
// The abstract is whatever discovery found last.
//
// # Validation
//
// Every problem in technote.toml is reported at once through a
// *ValidationError, which matches ErrValidation with errors.Is:
//
//	_, err := technote.ParseConfig(data)
//	var verr *technote.ValidationError
//	if errors.As(err, &verr) {
//	    for _, fe := range verr.Errors {
//	        fmt.Println(fe.Path, fe.Reason)
//	    }
//	}
//
// ORCID iDs, ROR IDs and SPDX license identifiers are checked and
// canonicalized while parsing.
//
// # Custom Assets
//
// The status notice shown on draft and deprecated technotes can be
// restyled with WithAssetPath:
//
//	assets/
//	├── styles/
//	│   └── status.css
//	└── templates/
//	    └── status.html
//
// # Build Environment
//
// GitHubRefName and GitHubRefType read GITHUB_REF_NAME and GITHUB_REF_TYPE,
// which GitHub Actions sets for every workflow run.
package technote
