package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kendall-kelly/lightwork-auth-api/utils"
	"go.uber.org/zap"
)

const scrapeLimit = 40000

var (
	whitespace = regexp.MustCompile(`\s+`)
	jsonFence  = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")
)

// ScrapedAddress is the address part of a scraped profile.
type ScrapedAddress struct {
	MainStreet string `json:"mainStreet"`
	Country    string `json:"country"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// ScrapedProfile is what the LLM extracts from a contractor's website.
type ScrapedProfile struct {
	Address            ScrapedAddress `json:"address"`
	CompanyImageURL    string         `json:"companyImageUrl"`
	CompanyName        string         `json:"companyName"`
	Bio                string         `json:"bio"`
	Skills             []string       `json:"skills"`
	QualificationName  string         `json:"qualificationName"`
	PhoneNumber        string         `json:"phoneNumber"`
	HourlyRate         string         `json:"hourlyRate"`
	ContractPreference string         `json:"contractPreference"`
	AreasCovered       []string       `json:"areasCovered"`
}

const scrapePrompt = `You interpret JSON extracted from the websites of service providers such as plumbers, electricians and other craftsmen, and fill in a user profile from it.

JSON Data: %s

Return only a JSON object of this shape, with "N/A" where the data is missing:
{
  "address": {"mainStreet": "", "country": "", "city": "", "postalCode": ""},
  "companyImageUrl": "",
  "companyName": "",
  "bio": "",
  "skills": [],
  "qualificationName": "",
  "phoneNumber": "",
  "hourlyRate": "",
  "contractPreference": "",
  "areasCovered": []
}

bio is a short description of their specialization and work ethic. skills are job tags such as "water heating" or "drainage". qualificationName is their profession, for example "Plumber". contractPreference is "hourly" or "fixed". Do not add any summary or description outside the JSON.`

// compactPage drops all whitespace and keeps at most scrapeLimit runes.
func compactPage(page []byte) string {
	compact := whitespace.ReplaceAllString(string(page), "")
	if r := []rune(compact); len(r) > scrapeLimit {
		return string(r[:scrapeLimit])
	}
	return compact
}

// stripFence removes a surrounding markdown code fence from an LLM reply.
func stripFence(reply string) string {
	reply = strings.TrimSpace(reply)
	if m := jsonFence.FindStringSubmatch(reply); m != nil {
		return m[1]
	}
	return reply
}

// ScrapeProfile fetches websiteURL through the scraping proxy and asks the
// LLM to fill a profile from it.
func (s *AccountService) ScrapeProfile(ctx context.Context, websiteURL string) (*ScrapedProfile, error) {
	if websiteURL == "" {
		return nil, utils.BadRequest("website_url is required")
	}
	page, err := s.Fetcher.FetchPage(ctx, websiteURL)
	if err != nil {
		return nil, utils.Wrap(err, "Scrape website failed")
	}
	data := compactPage(page)
	if data == "" {
		return nil, utils.BadRequest("The website returned no content")
	}

	reply, err := s.LLM.Complete(ctx, strings.Replace(scrapePrompt, "%s", data, 1), "")
	if err != nil {
		return nil, utils.Wrap(err, "Scrape website failed")
	}
	var profile ScrapedProfile
	if err := json.Unmarshal([]byte(stripFence(reply)), &profile); err != nil {
		s.Logger.Warn("Unparseable profile extraction", zap.String("url", websiteURL), zap.Error(err))
		return nil, utils.Wrap(err, "Scrape website failed")
	}
	return &profile, nil
}
