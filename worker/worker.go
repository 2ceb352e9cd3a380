package worker

import (
	"database/sql"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"sabormap/countries"
	"sabormap/views"
)

const SweepInterval = 15 * time.Minute

// StartAuditWorker kicks off a background routine that periodically sweeps
// the restaurants table for rows the views silently exclude: blank
// countries, unrecognized price tokens, unparseable coordinates, and alias
// variants that no longer match any row. Findings are only logged; the data
// is owned elsewhere and never mutated here.
func StartAuditWorker(db *sql.DB, aliases countries.Table) {
	log.WithField("interval", SweepInterval.String()).Info("starting data audit worker")
	ticker := time.NewTicker(SweepInterval)
	go func() {
		Sweep(db, aliases)
		for range ticker.C {
			Sweep(db, aliases)
		}
	}()
}

// Sweep runs every audit once.
func Sweep(db *sql.DB, aliases countries.Table) {
	auditBlankCountries(db)
	auditPriceTokens(db)
	auditCoordinates(db)
	auditAliasVariants(db, aliases)
}

func auditBlankCountries(db *sql.DB) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM restaurants WHERE country IS NULL OR TRIM(country) = ''").Scan(&count)
	if err != nil {
		log.WithError(err).Warn("blank-country audit query failed")
		return
	}
	if count > 0 {
		log.WithField("rows", count).Info("rows with blank country are excluded from country views")
	}
}

func auditPriceTokens(db *sql.DB) {
	rows, err := db.Query("SELECT price_level FROM restaurants WHERE price_level IS NOT NULL AND TRIM(price_level) <> ''")
	if err != nil {
		log.WithError(err).Warn("price-token audit query failed")
		return
	}
	defer rows.Close()

	unrecognized := map[string]int{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			continue
		}
		if _, ok := views.PriceToken(raw); !ok {
			unrecognized[raw]++
		}
	}
	if len(unrecognized) > 0 {
		log.WithField("tokens", unrecognized).Info("unrecognized price levels are excluded from price views")
	}
}

func auditCoordinates(db *sql.DB) {
	rows, err := db.Query("SELECT latitude, longitude FROM restaurants WHERE latitude IS NOT NULL AND longitude IS NOT NULL")
	if err != nil {
		log.WithError(err).Warn("coordinate audit query failed")
		return
	}
	defer rows.Close()

	bad := 0
	for rows.Next() {
		var lat, lng sql.NullString
		if err := rows.Scan(&lat, &lng); err != nil {
			continue
		}
		_, okLat := views.ParseCoordinate(strings.TrimSpace(lat.String))
		_, okLng := views.ParseCoordinate(strings.TrimSpace(lng.String))
		if !okLat || !okLng {
			bad++
		}
	}
	if bad > 0 {
		log.WithField("rows", bad).Info("rows with unparseable coordinates are excluded from map views")
	}
}

// auditAliasVariants flags declared variants that match no stored row, which
// usually means the table is stale relative to a re-imported data set.
func auditAliasVariants(db *sql.DB, aliases countries.Table) {
	rows, err := db.Query("SELECT DISTINCT country FROM restaurants WHERE country IS NOT NULL")
	if err != nil {
		log.WithError(err).Warn("alias audit query failed")
		return
	}
	defer rows.Close()

	present := map[string]bool{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			continue
		}
		present[c] = true
	}

	for canonical, variants := range aliases {
		for _, v := range variants {
			if !present[v] {
				log.WithFields(log.Fields{
					"canonical": canonical,
					"variant":   v,
				}).Debug("alias variant matches no stored row")
			}
		}
	}
}
