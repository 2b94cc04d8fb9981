package database

import (
	"strconv"
	"time"

	"pickem-app-go/models"
)

// BSON cannot carry int-keyed maps, so the stored documents keep string keys
// and the conversion to the typed int keys the rest of the code uses happens
// here, at the storage boundary, and nowhere else.

type gameDoc struct {
	ID          int    `bson:"id"`
	Away        string `bson:"away"`
	Home        string `bson:"home"`
	Date        string `bson:"date,omitempty"`
	NeutralSite bool   `bson:"neutral_site,omitempty"`
}

type weekDoc struct {
	Games      []gameDoc         `bson:"games"`
	Winners    map[string]string `bson:"winners"`
	WinnersSet bool              `bson:"winners_set"`
	CreatedAt  time.Time         `bson:"created_at"`
}

type seasonDoc struct {
	Name       string             `bson:"_id"`
	Active     bool               `bson:"active"`
	Locked     bool               `bson:"locked"`
	DocVersion int64              `bson:"doc_version"`
	Weeks      map[string]weekDoc `bson:"weeks"`
}

type confidenceDoc struct {
	GameID int `bson:"game_id"`
	Weight int `bson:"weight"`
}

type submissionDoc struct {
	Picks            map[string]string `bson:"picks"`
	Confidence       []confidenceDoc   `bson:"confidence"`
	Submitted        *time.Time        `bson:"submitted,omitempty"`
	CorrectPicks     int               `bson:"correct_picks"`
	ConfidencePoints int               `bson:"confidence_points"`
}

type userDoc struct {
	Username    string                   `bson:"_id"`
	Email       string                   `bson:"email"`
	Password    string                   `bson:"password"`
	FirstName   string                   `bson:"first_name,omitempty"`
	LastName    string                   `bson:"last_name,omitempty"`
	DisplayName string                   `bson:"display_name"`
	Approved    bool                     `bson:"approved"`
	Active      bool                     `bson:"active"`
	IsAdmin     bool                     `bson:"is_admin"`
	Seasons     []string                 `bson:"seasons"`
	Picks       map[string]submissionDoc `bson:"picks"`
	CreatedAt   time.Time                `bson:"created_at"`
	UpdatedAt   time.Time                `bson:"updated_at"`
}

type pendingUserDoc struct {
	Username    string    `bson:"_id"`
	Email       string    `bson:"email"`
	Password    string    `bson:"password"`
	FirstName   string    `bson:"first_name,omitempty"`
	LastName    string    `bson:"last_name,omitempty"`
	DisplayName string    `bson:"display_name"`
	RequestedAt time.Time `bson:"requested_at"`
}

type settingDoc struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

func newSeasonDoc(season *models.Season) *seasonDoc {
	doc := &seasonDoc{
		Name:       season.Name,
		Active:     season.Active,
		Locked:     season.Locked,
		DocVersion: season.DocVersion,
		Weeks:      make(map[string]weekDoc, len(season.Weeks)),
	}
	for num, week := range season.Weeks {
		doc.Weeks[strconv.Itoa(num)] = newWeekDoc(week)
	}
	return doc
}

func newWeekDoc(week *models.Week) weekDoc {
	doc := weekDoc{
		Games:      make([]gameDoc, 0, len(week.Games)),
		Winners:    make(map[string]string, len(week.Winners)),
		WinnersSet: week.WinnersSet,
		CreatedAt:  week.CreatedAt,
	}
	for _, g := range week.Games {
		doc.Games = append(doc.Games, gameDoc{
			ID:          g.ID,
			Away:        g.Away,
			Home:        g.Home,
			Date:        g.Date,
			NeutralSite: g.NeutralSite,
		})
	}
	for gameID, winner := range week.Winners {
		doc.Winners[strconv.Itoa(gameID)] = winner
	}
	return doc
}

func (d *seasonDoc) toModel() *models.Season {
	season := models.NewSeason(d.Name)
	season.Active = d.Active
	season.Locked = d.Locked
	season.DocVersion = d.DocVersion
	for key, wd := range d.Weeks {
		num, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		season.Weeks[num] = wd.toModel()
	}
	return season
}

func (d weekDoc) toModel() *models.Week {
	week := models.NewWeek()
	week.WinnersSet = d.WinnersSet
	week.CreatedAt = d.CreatedAt
	for _, g := range d.Games {
		week.Games = append(week.Games, models.Game{
			ID:          g.ID,
			Away:        g.Away,
			Home:        g.Home,
			Date:        g.Date,
			NeutralSite: g.NeutralSite,
		})
	}
	for key, winner := range d.Winners {
		gameID, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		week.Winners[gameID] = winner
	}
	return week
}

func newUserDoc(user *models.User) *userDoc {
	doc := &userDoc{
		Username:    user.Username,
		Email:       user.Email,
		Password:    user.Password,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DisplayName: user.DisplayName,
		Approved:    user.Approved,
		Active:      user.Active,
		IsAdmin:     user.IsAdmin,
		Seasons:     user.Seasons,
		Picks:       make(map[string]submissionDoc, len(user.Picks)),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
	for weekNum, sub := range user.Picks {
		if sub == nil {
			continue
		}
		doc.Picks[strconv.Itoa(weekNum)] = newSubmissionDoc(sub)
	}
	return doc
}

func newSubmissionDoc(sub *models.PickSubmission) submissionDoc {
	doc := submissionDoc{
		Picks:            make(map[string]string, len(sub.Picks)),
		Submitted:        sub.Submitted,
		CorrectPicks:     sub.CorrectPicks,
		ConfidencePoints: sub.ConfidencePoints,
	}
	for gameID, pick := range sub.Picks {
		doc.Picks[strconv.Itoa(gameID)] = pick
	}
	for _, c := range sub.Confidence {
		doc.Confidence = append(doc.Confidence, confidenceDoc{GameID: c.GameID, Weight: c.Weight})
	}
	return doc
}

func (d *userDoc) toModel() *models.User {
	user := &models.User{
		Username:    d.Username,
		Email:       d.Email,
		Password:    d.Password,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		DisplayName: d.DisplayName,
		Approved:    d.Approved,
		Active:      d.Active,
		IsAdmin:     d.IsAdmin,
		Seasons:     d.Seasons,
		Picks:       make(map[int]*models.PickSubmission, len(d.Picks)),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	for key, sd := range d.Picks {
		weekNum, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		user.Picks[weekNum] = sd.toModel()
	}
	return user
}

func (d submissionDoc) toModel() *models.PickSubmission {
	sub := &models.PickSubmission{
		Picks:            make(map[int]string, len(d.Picks)),
		Submitted:        d.Submitted,
		CorrectPicks:     d.CorrectPicks,
		ConfidencePoints: d.ConfidencePoints,
	}
	for key, pick := range d.Picks {
		gameID, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		sub.Picks[gameID] = pick
	}
	for _, c := range d.Confidence {
		sub.Confidence = append(sub.Confidence, models.ConfidencePick{GameID: c.GameID, Weight: c.Weight})
	}
	return sub
}

func newPendingUserDoc(p *models.PendingUser) *pendingUserDoc {
	return &pendingUserDoc{
		Username:    p.Username,
		Email:       p.Email,
		Password:    p.Password,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DisplayName: p.DisplayName,
		RequestedAt: p.RequestedAt,
	}
}

func (d *pendingUserDoc) toModel() *models.PendingUser {
	return &models.PendingUser{
		Username:    d.Username,
		Email:       d.Email,
		Password:    d.Password,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		DisplayName: d.DisplayName,
		RequestedAt: d.RequestedAt,
	}
}
