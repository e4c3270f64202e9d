package handlers

import "net/http"

// Routes assembles the full API surface. The server binary wraps the result
// in the logging middleware; tests hit it directly.
func Routes(mw *Middleware, words *WordHandler, tests *TestHandler, quiz *QuizHandler, profile *ProfileHandler, admin *AdminHandler) http.Handler {
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /api/words", words.GetWords)
	mux.HandleFunc("POST /api/quiz/generate", quiz.GenerateQuiz)
	mux.HandleFunc("POST /api/sentence/check", quiz.CheckSentence)
	mux.HandleFunc("POST /api/profile", profile.CreateProfile)

	// Routes requiring a user token
	mux.HandleFunc("GET /api/profile/nickname", mw.RequireUser(profile.GetNickname))
	mux.HandleFunc("PUT /api/profile/nickname", mw.RequireUser(profile.SetNickname))
	mux.HandleFunc("POST /api/tests", mw.RequireUser(tests.CreateTest))
	mux.HandleFunc("GET /api/tests/{id}", mw.RequireUser(tests.GetTest))
	mux.HandleFunc("POST /api/tests/{id}/answer", mw.RequireUser(tests.SubmitAnswer))
	mux.HandleFunc("POST /api/tests/{id}/next", mw.RequireUser(tests.NextQuestion))
	mux.HandleFunc("GET /api/results", mw.RequireUser(tests.GetResults))

	// Admin routes
	mux.HandleFunc("POST /admin/daily-words", mw.RequireAdmin(admin.AddDailyWords))

	return mw.CORS(mux)
}
