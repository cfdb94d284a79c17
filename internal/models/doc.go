// Package models defines the canonical lineup entities shared by every tidalfest component.
//
// A backend response, whatever envelope it arrives in, is normalized into a single [Result]:
//   - [Artist] : a performer with a popularity score and listening details
//   - [Tier] : prominence category (headliner > special guest > undercard > tiny letters)
//   - [Day] : one festival day carrying its ordered tiers
//   - [Metadata] : optional backend-supplied context for day-partitioned lineups
//
// Tier order is display-significant and is preserved exactly as the backend sent it.
// Flat three-tier payloads become a one-day [Result] with Partitioned unset.
package models
