package services

import (
	"context"
	"time"

	"weddingstudio/internal/domain"
)

// fakeWeddingRepo implements domain.WeddingRepository for tests.
type fakeWeddingRepo struct {
	byID    map[string]*domain.Wedding
	byURL   map[string]*domain.Wedding
	created []*domain.Wedding
	deleted []string
	err     error
}

func newFakeWeddingRepo(weddings ...*domain.Wedding) *fakeWeddingRepo {
	f := &fakeWeddingRepo{
		byID:  make(map[string]*domain.Wedding),
		byURL: make(map[string]*domain.Wedding),
	}
	for _, w := range weddings {
		f.byID[w.ID] = w
		f.byURL[w.UniqueURL] = w
	}
	return f
}

func (f *fakeWeddingRepo) Create(ctx context.Context, w *domain.Wedding) error {
	if f.err != nil {
		return f.err
	}
	w.ID = "wedding-created"
	f.byID[w.ID] = w
	f.byURL[w.UniqueURL] = w
	f.created = append(f.created, w)
	return nil
}

func (f *fakeWeddingRepo) GetByID(ctx context.Context, id string) (*domain.Wedding, error) {
	if f.err != nil {
		return nil, f.err
	}
	w, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

func (f *fakeWeddingRepo) GetByUniqueURL(ctx context.Context, uniqueURL string) (*domain.Wedding, error) {
	if f.err != nil {
		return nil, f.err
	}
	w, ok := f.byURL[uniqueURL]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

func (f *fakeWeddingRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Wedding, error) {
	if f.err != nil {
		return nil, f.err
	}
	var weddings []*domain.Wedding
	for _, w := range f.byID {
		if w.UserID == userID {
			weddings = append(weddings, w)
		}
	}
	return weddings, nil
}

func (f *fakeWeddingRepo) Update(ctx context.Context, id string, upd domain.WeddingUpdate) (*domain.Wedding, error) {
	w, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Venue != nil {
		w.Venue = *upd.Venue
	}
	if upd.IsPublic != nil {
		w.IsPublic = *upd.IsPublic
	}
	return w, nil
}

func (f *fakeWeddingRepo) DeleteCascade(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeAccessRepo implements domain.WeddingAccessRepository for tests. Grants
// are keyed by userID + ":" + weddingID. When collabs and users are set,
// GetActive filters out grants whose collaborator is revoked, mirroring the
// SQL read path.
type fakeAccessRepo struct {
	grants  map[string]*domain.WeddingAccess
	created []*domain.WeddingAccess
	collabs *fakeCollaboratorRepo
	users   *fakeUserRepo
	err     error
}

func newFakeAccessRepo() *fakeAccessRepo {
	return &fakeAccessRepo{grants: make(map[string]*domain.WeddingAccess)}
}

func (f *fakeAccessRepo) put(a *domain.WeddingAccess) {
	f.grants[a.UserID+":"+a.WeddingID] = a
}

func (f *fakeAccessRepo) Create(ctx context.Context, a *domain.WeddingAccess) error {
	if f.err != nil {
		return f.err
	}
	a.ID = "access-created"
	f.put(a)
	f.created = append(f.created, a)
	return nil
}

func (f *fakeAccessRepo) Update(ctx context.Context, userID, weddingID string, perms domain.Permissions) (*domain.WeddingAccess, error) {
	a, ok := f.grants[userID+":"+weddingID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.Permissions = perms
	return a, nil
}

func (f *fakeAccessRepo) GetActive(ctx context.Context, userID, weddingID string) (*domain.WeddingAccess, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.grants[userID+":"+weddingID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if f.collabs != nil && f.users != nil {
		if u, err := f.users.GetByID(ctx, userID); err == nil {
			if c, err := f.collabs.GetByEmailAndWedding(ctx, u.Email, weddingID); err == nil && c.Status == domain.CollaboratorRevoked {
				return nil, domain.ErrNotFound
			}
		}
	}
	return a, nil
}

func (f *fakeAccessRepo) ListByWeddingID(ctx context.Context, weddingID string) ([]*domain.WeddingAccess, error) {
	var grants []*domain.WeddingAccess
	for _, a := range f.grants {
		if a.WeddingID == weddingID {
			grants = append(grants, a)
		}
	}
	return grants, nil
}

// fakeGuestRepo implements domain.GuestRepository for tests.
type fakeGuestRepo struct {
	byID      map[string]*domain.Guest
	created   []*domain.Guest
	createErr error
	updateErr error
}

func newFakeGuestRepo(guests ...*domain.Guest) *fakeGuestRepo {
	f := &fakeGuestRepo{byID: make(map[string]*domain.Guest)}
	for _, g := range guests {
		f.byID[g.ID] = g
	}
	return f
}

func (f *fakeGuestRepo) Create(ctx context.Context, g *domain.Guest) error {
	if f.createErr != nil {
		return f.createErr
	}
	g.ID = "guest-created"
	f.byID[g.ID] = g
	f.created = append(f.created, g)
	return nil
}

func (f *fakeGuestRepo) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	g, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

func (f *fakeGuestRepo) ListByWeddingID(ctx context.Context, weddingID string) ([]*domain.Guest, error) {
	var guests []*domain.Guest
	for _, g := range f.byID {
		if g.WeddingID == weddingID {
			guests = append(guests, g)
		}
	}
	return guests, nil
}

func (f *fakeGuestRepo) Search(ctx context.Context, weddingID, search string, params domain.PaginationParams) ([]*domain.Guest, int, error) {
	guests, _ := f.ListByWeddingID(ctx, weddingID)
	return guests, len(guests), nil
}

func (f *fakeGuestRepo) UpdateRSVP(ctx context.Context, id, status string, message *string, respondedAt time.Time) (*domain.Guest, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	g, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	g.RSVPStatus = status
	if message != nil {
		g.Message = message
	}
	at := respondedAt
	g.RespondedAt = &at
	return g, nil
}

// fakeInvitationRepo implements domain.InvitationRepository for tests.
type fakeInvitationRepo struct {
	byID        map[string]*domain.Invitation
	created     []*domain.Invitation
	reminderAt  map[string]time.Time
	createErr   error
	reminderErr error
}

func newFakeInvitationRepo(invs ...*domain.Invitation) *fakeInvitationRepo {
	f := &fakeInvitationRepo{
		byID:       make(map[string]*domain.Invitation),
		reminderAt: make(map[string]time.Time),
	}
	for _, inv := range invs {
		f.byID[inv.ID] = inv
	}
	return f
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	if f.createErr != nil {
		return f.createErr
	}
	inv.ID = "inv-created"
	f.byID[inv.ID] = inv
	f.created = append(f.created, inv)
	return nil
}

func (f *fakeInvitationRepo) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	inv, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func (f *fakeInvitationRepo) ListByWeddingID(ctx context.Context, weddingID string) ([]*domain.Invitation, error) {
	var invs []*domain.Invitation
	for _, inv := range f.byID {
		if inv.WeddingID == weddingID {
			invs = append(invs, inv)
		}
	}
	return invs, nil
}

func (f *fakeInvitationRepo) ListByGuestID(ctx context.Context, guestID string) ([]*domain.Invitation, error) {
	var invs []*domain.Invitation
	for _, inv := range f.byID {
		if inv.GuestID == guestID {
			invs = append(invs, inv)
		}
	}
	return invs, nil
}

func (f *fakeInvitationRepo) SetStatus(ctx context.Context, id, status string, errorMessage *string, now time.Time) (*domain.Invitation, error) {
	inv, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	inv.Status = status
	at := now
	switch status {
	case domain.InvitationSent:
		if inv.SentAt == nil {
			inv.SentAt = &at
		}
	case domain.InvitationDelivered:
		if inv.DeliveredAt == nil {
			inv.DeliveredAt = &at
		}
	case domain.InvitationOpened:
		if inv.OpenedAt == nil {
			inv.OpenedAt = &at
		}
	}
	if errorMessage != nil {
		inv.ErrorMessage = errorMessage
	}
	return inv, nil
}

func (f *fakeInvitationRepo) SetReminderSentAt(ctx context.Context, id string, at time.Time) error {
	if f.reminderErr != nil {
		return f.reminderErr
	}
	inv, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	f.reminderAt[id] = at
	stamp := at
	inv.ReminderSentAt = &stamp
	return nil
}

// fakeCollaboratorRepo implements domain.CollaboratorRepository for tests.
type fakeCollaboratorRepo struct {
	byID      map[string]*domain.GuestCollaborator
	touched   []string
	createErr error
}

func newFakeCollaboratorRepo(collabs ...*domain.GuestCollaborator) *fakeCollaboratorRepo {
	f := &fakeCollaboratorRepo{byID: make(map[string]*domain.GuestCollaborator)}
	for _, c := range collabs {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCollaboratorRepo) Create(ctx context.Context, c *domain.GuestCollaborator) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.WeddingID == c.WeddingID && existing.Email == c.Email {
			return domain.ErrCollaboratorExists
		}
	}
	c.ID = "collab-created"
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCollaboratorRepo) GetByID(ctx context.Context, id string) (*domain.GuestCollaborator, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeCollaboratorRepo) GetByEmailAndWedding(ctx context.Context, email, weddingID string) (*domain.GuestCollaborator, error) {
	for _, c := range f.byID {
		if c.Email == email && c.WeddingID == weddingID {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCollaboratorRepo) ListByWeddingID(ctx context.Context, weddingID string) ([]*domain.GuestCollaborator, error) {
	var collabs []*domain.GuestCollaborator
	for _, c := range f.byID {
		if c.WeddingID == weddingID {
			collabs = append(collabs, c)
		}
	}
	return collabs, nil
}

func (f *fakeCollaboratorRepo) SetStatus(ctx context.Context, id, status string, acceptedAt, lastActiveAt *time.Time) (*domain.GuestCollaborator, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.Status = status
	if acceptedAt != nil && c.AcceptedAt == nil {
		c.AcceptedAt = acceptedAt
	}
	if lastActiveAt != nil {
		c.LastActiveAt = lastActiveAt
	}
	return c, nil
}

func (f *fakeCollaboratorRepo) Touch(ctx context.Context, id string, lastActiveAt time.Time) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	f.touched = append(f.touched, id)
	return nil
}

// fakePhotoRepo implements domain.PhotoRepository for tests.
type fakePhotoRepo struct {
	byID map[string]*domain.Photo
}

func newFakePhotoRepo(photos ...*domain.Photo) *fakePhotoRepo {
	f := &fakePhotoRepo{byID: make(map[string]*domain.Photo)}
	for _, p := range photos {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakePhotoRepo) Create(ctx context.Context, p *domain.Photo) error {
	p.ID = "photo-created"
	f.byID[p.ID] = p
	return nil
}

func (f *fakePhotoRepo) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePhotoRepo) ListByWeddingID(ctx context.Context, weddingID string) ([]*domain.Photo, error) {
	var photos []*domain.Photo
	for _, p := range f.byID {
		if p.WeddingID == weddingID {
			photos = append(photos, p)
		}
	}
	return photos, nil
}

func (f *fakePhotoRepo) CountByWeddingID(ctx context.Context, weddingID string) (int, error) {
	photos, _ := f.ListByWeddingID(ctx, weddingID)
	return len(photos), nil
}

func (f *fakePhotoRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeGuestBookRepo implements domain.GuestBookRepository for tests.
type fakeGuestBookRepo struct {
	entries []*domain.GuestBookEntry
}

func (f *fakeGuestBookRepo) Create(ctx context.Context, e *domain.GuestBookEntry) error {
	e.ID = "entry-created"
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeGuestBookRepo) ListByWeddingID(ctx context.Context, weddingID string) ([]*domain.GuestBookEntry, error) {
	var entries []*domain.GuestBookEntry
	for _, e := range f.entries {
		if e.WeddingID == weddingID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (f *fakeGuestBookRepo) CountByWeddingID(ctx context.Context, weddingID string) (int, error) {
	entries, _ := f.ListByWeddingID(ctx, weddingID)
	return len(entries), nil
}

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	created []*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
	for _, u := range users {
		f.byID[u.ID] = u
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = "user-created"
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	f.created = append(f.created, u)
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	invitations   []*domain.GuestInvitationEmailData
	reminders     []*domain.RSVPReminderEmailData
	collabInvites []*domain.CollaboratorInviteEmailData
	sendErr       error
}

func (f *fakeEmailService) SendGuestInvitation(ctx context.Context, data *domain.GuestInvitationEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.invitations = append(f.invitations, data)
	return nil
}

func (f *fakeEmailService) SendRSVPReminder(ctx context.Context, data *domain.RSVPReminderEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.reminders = append(f.reminders, data)
	return nil
}

func (f *fakeEmailService) SendCollaboratorInvite(ctx context.Context, data *domain.CollaboratorInviteEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.collabInvites = append(f.collabInvites, data)
	return nil
}

// allowAllChecker and denyAllChecker stub the permission resolver for
// services that only consume its verdict.
type allowAllChecker struct{}

func (allowAllChecker) CheckPermission(ctx context.Context, principal domain.Principal, weddingID, capability string) (bool, error) {
	return true, nil
}

type denyAllChecker struct{}

func (denyAllChecker) CheckPermission(ctx context.Context, principal domain.Principal, weddingID, capability string) (bool, error) {
	return false, nil
}
