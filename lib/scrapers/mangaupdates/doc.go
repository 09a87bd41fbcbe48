// Package mangaupdates scrapes the classic HTML pages of
// mangaupdates.com.
//
// the scraping methods here are read-only and mostly stateless: the
// output depends solely on the fetched page. each one follows the same
// structure:
//  1. make assertions on input validity.
//  2. fetch the page through the shared Client.
//  3. make assertions on response validity (status, "not found"
//     placeholders).
//  4. transform the page (goquery selections) into output structures.
//
// Series is the exception that carries state on purpose: it holds the
// fetched page plus a cache of parsed scalar fields so repeated access
// does not re-run the selectors. Populate refreshes the page and drops
// the cache wholesale.
package mangaupdates
