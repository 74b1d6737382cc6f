package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"

	"github.com/m2tx/answer_agent/internal/application"
	"github.com/m2tx/answer_agent/internal/config"
)

func main() {
	ancli.SetupSlog()

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	a, err := application.NewAgent(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	http.HandleFunc("/tools", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(a.Declarations())
	})

	http.HandleFunc("/answer", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			Question string `json:"question"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if req.Question == "" {
			http.Error(w, "question is required", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")

		json.NewEncoder(w).Encode(map[string]string{
			"answer": a.Answer(r.Context(), req.Question),
		})
	})

	ancli.Okf("listening on :%s\n", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, nil))
}
