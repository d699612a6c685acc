package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

// In-memory repository fakes shared by the service tests. They mirror the
// postgres contracts: scoped writes surface domain.ErrNotFound, upserts stay
// idempotent, and a fake's err field poisons every call that reads it.

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptrTime(t time.Time) *time.Time { return &t }

func ptrFloat(f float64) *float64 { return &f }

func ptrStr(s string) *string { return &s }

type fakeInventoryRepo struct {
	err   error
	items []domain.InventoryItem
}

func (f *fakeInventoryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.InventoryItem
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.InventoryItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, item := range f.items {
		if item.ID == itemID && item.UserID == userID {
			match := item
			return &match, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInventoryRepo) FindMatch(ctx context.Context, userID uuid.UUID, ingredientName string, location domain.Location) (*domain.InventoryItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, item := range f.items {
		if item.UserID == userID && item.Location == location && strings.EqualFold(item.IngredientName, ingredientName) {
			match := item
			return &match, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInventoryRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	if f.err != nil {
		return f.err
	}
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeInventoryRepo) Update(ctx context.Context, item *domain.InventoryItem) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.items {
		if f.items[i].ID == item.ID && f.items[i].UserID == item.UserID {
			f.items[i] = *item
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeInventoryRepo) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.items {
		if f.items[i].ID == itemID && f.items[i].UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeMealRepo answers the activity queries from its stored logs the way the
// SQL does: distinct midnight days, inclusive windows, per-day sums. Green
// logs are the ones whose recipe id is in the green set.
type fakeMealRepo struct {
	err   error
	logs  []domain.MealLog
	green map[uuid.UUID]bool
}

func (f *fakeMealRepo) isGreen(entry domain.MealLog) bool {
	return entry.RecipeID != nil && f.green[*entry.RecipeID]
}

func (f *fakeMealRepo) activityDays(userID uuid.UUID, greenOnly bool) []time.Time {
	seen := make(map[time.Time]struct{})
	var days []time.Time
	for _, entry := range f.logs {
		if entry.UserID != userID || (greenOnly && !f.isGreen(entry)) {
			continue
		}
		d := dayOf(entry.EatenOn)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

func (f *fakeMealRepo) countWindow(userID uuid.UUID, from, to time.Time, greenOnly bool) int {
	count := 0
	for _, entry := range f.logs {
		if entry.UserID != userID || (greenOnly && !f.isGreen(entry)) {
			continue
		}
		d := dayOf(entry.EatenOn)
		if d.Before(dayOf(from)) || d.After(dayOf(to)) {
			continue
		}
		count++
	}
	return count
}

func (f *fakeMealRepo) Create(ctx context.Context, entry *domain.MealLog) error {
	if f.err != nil {
		return f.err
	}
	f.logs = append(f.logs, *entry)
	return nil
}

func (f *fakeMealRepo) ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MealLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.MealLog
	for _, entry := range f.logs {
		if entry.UserID != userID {
			continue
		}
		d := dayOf(entry.EatenOn)
		if d.Before(dayOf(from)) || d.After(dayOf(to)) {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

func (f *fakeMealRepo) Delete(ctx context.Context, userID, logID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.logs {
		if f.logs[i].ID == logID && f.logs[i].UserID == userID {
			f.logs = append(f.logs[:i], f.logs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeMealRepo) ActivityDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.activityDays(userID, false), nil
}

func (f *fakeMealRepo) GreenActivityDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.activityDays(userID, true), nil
}

func (f *fakeMealRepo) CountInWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.countWindow(userID, from, to, false), nil
}

func (f *fakeMealRepo) CountGreenInWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.countWindow(userID, from, to, true), nil
}

func (f *fakeMealRepo) DailyCalories(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DailyCalories, error) {
	if f.err != nil {
		return nil, f.err
	}
	sums := make(map[time.Time]float64)
	for _, entry := range f.logs {
		if entry.UserID != userID {
			continue
		}
		d := dayOf(entry.EatenOn)
		if d.Before(dayOf(from)) || d.After(dayOf(to)) {
			continue
		}
		sums[d] += entry.Calories
	}
	days := make([]domain.DailyCalories, 0, len(sums))
	for d, calories := range sums {
		days = append(days, domain.DailyCalories{Day: d, Calories: calories})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day.Before(days[j].Day) })
	return days, nil
}

func (f *fakeMealRepo) SumForDate(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.NutrientTotals, error) {
	if f.err != nil {
		return nil, f.err
	}
	totals := &domain.NutrientTotals{}
	for _, entry := range f.logs {
		if entry.UserID != userID || !dayOf(entry.EatenOn).Equal(dayOf(day)) {
			continue
		}
		totals.Calories += entry.Calories
		totals.Protein += entry.Protein
		totals.Carbs += entry.Carbs
		totals.Fat += entry.Fat
	}
	return totals, nil
}

type fakeGoalRepo struct {
	goals map[uuid.UUID]domain.NutrientGoal
}

func (f *fakeGoalRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.NutrientGoal, error) {
	goal, ok := f.goals[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &goal, nil
}

func (f *fakeGoalRepo) Upsert(ctx context.Context, goal *domain.NutrientGoal) error {
	if f.goals == nil {
		f.goals = make(map[uuid.UUID]domain.NutrientGoal)
	}
	f.goals[goal.UserID] = *goal
	return nil
}

type fakeChallengeRepo struct {
	challenges  []domain.Challenge
	memberships []domain.UserChallenge
}

func (f *fakeChallengeRepo) ListActive(ctx context.Context) ([]domain.Challenge, error) {
	var out []domain.Challenge
	for _, ch := range f.challenges {
		if ch.Active {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (f *fakeChallengeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Challenge, error) {
	for _, ch := range f.challenges {
		if ch.ID == id {
			match := ch
			return &match, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeChallengeRepo) Join(ctx context.Context, membership *domain.UserChallenge) error {
	for _, m := range f.memberships {
		if m.UserID == membership.UserID && m.ChallengeID == membership.ChallengeID {
			return domain.ErrAlreadyJoined
		}
	}
	if membership.JoinedAt.IsZero() {
		membership.JoinedAt = time.Now().UTC()
	}
	f.memberships = append(f.memberships, *membership)
	return nil
}

func (f *fakeChallengeRepo) Memberships(ctx context.Context, userID uuid.UUID) ([]domain.UserChallenge, error) {
	var out []domain.UserChallenge
	for _, m := range f.memberships {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeChallengeRepo) MarkCompleted(ctx context.Context, membershipID uuid.UUID, at time.Time) (bool, error) {
	for i := range f.memberships {
		if f.memberships[i].ID != membershipID {
			continue
		}
		if f.memberships[i].CompletedAt != nil {
			return false, nil
		}
		stamp := at
		f.memberships[i].CompletedAt = &stamp
		return true, nil
	}
	return false, nil
}

type fakeAchievementRepo struct {
	defs   []domain.AchievementDefinition
	earned []domain.UserAchievement
}

func (f *fakeAchievementRepo) ListDefinitions(ctx context.Context) ([]domain.AchievementDefinition, error) {
	return append([]domain.AchievementDefinition(nil), f.defs...), nil
}

func (f *fakeAchievementRepo) GetDefinition(ctx context.Context, id string) (*domain.AchievementDefinition, error) {
	for _, def := range f.defs {
		if def.ID == id {
			match := def
			return &match, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAchievementRepo) ListEarned(ctx context.Context, userID uuid.UUID) ([]domain.UserAchievement, error) {
	var out []domain.UserAchievement
	for _, e := range f.earned {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAchievementRepo) Unlock(ctx context.Context, userID uuid.UUID, achievementID string, at time.Time) (bool, error) {
	for _, e := range f.earned {
		if e.UserID == userID && e.AchievementID == achievementID {
			return false, nil
		}
	}
	f.earned = append(f.earned, domain.UserAchievement{UserID: userID, AchievementID: achievementID, EarnedAt: at})
	return true, nil
}

type fakeStreakRepo struct {
	raiseErr error
	longest  map[domain.StreakType]int
	raised   []domain.StreakType
}

func (f *fakeStreakRepo) Longest(ctx context.Context, userID uuid.UUID) (map[domain.StreakType]int, error) {
	out := make(map[domain.StreakType]int, len(f.longest))
	for k, v := range f.longest {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStreakRepo) RaiseLongest(ctx context.Context, userID uuid.UUID, streakType domain.StreakType, longest int) error {
	if f.raiseErr != nil {
		return f.raiseErr
	}
	if f.longest == nil {
		f.longest = make(map[domain.StreakType]int)
	}
	if longest > f.longest[streakType] {
		f.longest[streakType] = longest
	}
	f.raised = append(f.raised, streakType)
	return nil
}

type fakeNotificationRepo struct {
	notifications []domain.Notification
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *domain.Notification) (bool, error) {
	if n.DedupeKey != nil {
		for _, existing := range f.notifications {
			if existing.UserID == n.UserID && existing.DedupeKey != nil && *existing.DedupeKey == *n.DedupeKey {
				return false, nil
			}
		}
	}
	f.notifications = append(f.notifications, *n)
	return true, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	for i := range f.notifications {
		if f.notifications[i].ID == notificationID && f.notifications[i].UserID == userID {
			f.notifications[i].Read = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	for i := range f.notifications {
		if f.notifications[i].UserID == userID {
			f.notifications[i].Read = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// ofType filters the stored feed, a convenience for asserts.
func (f *fakeNotificationRepo) ofType(typ domain.NotificationType) []domain.Notification {
	var out []domain.Notification
	for _, n := range f.notifications {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

type fakeDeviceRepo struct {
	devices []domain.UserDevice
}

func (f *fakeDeviceRepo) Register(ctx context.Context, device *domain.UserDevice) error {
	for i := range f.devices {
		if f.devices[i].UserID == device.UserID && f.devices[i].Token == device.Token {
			f.devices[i].Platform = device.Platform
			f.devices[i].Enabled = device.Enabled
			return nil
		}
	}
	f.devices = append(f.devices, *device)
	return nil
}

type fakeShoppingRepo struct {
	lists []domain.ShoppingList
	items []domain.ShoppingListItem
}

func (f *fakeShoppingRepo) itemsOf(listID uuid.UUID) []domain.ShoppingListItem {
	var out []domain.ShoppingListItem
	for _, item := range f.items {
		if item.ListID == listID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (f *fakeShoppingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingList, error) {
	var out []domain.ShoppingList
	for _, list := range f.lists {
		if list.UserID == userID {
			bare := list
			bare.Items = nil
			bare.Progress = nil
			out = append(out, bare)
		}
	}
	return out, nil
}

func (f *fakeShoppingRepo) GetByID(ctx context.Context, userID, listID uuid.UUID) (*domain.ShoppingList, error) {
	for _, list := range f.lists {
		if list.ID == listID && list.UserID == userID {
			match := list
			match.Items = f.itemsOf(listID)
			return &match, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeShoppingRepo) Create(ctx context.Context, list *domain.ShoppingList) error {
	stored := *list
	stored.Items = nil
	stored.Progress = nil
	f.lists = append(f.lists, stored)

	for i := range list.Items {
		item := &list.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.ListID = list.ID
		item.Position = i
		f.items = append(f.items, *item)
	}
	return nil
}

func (f *fakeShoppingRepo) Rename(ctx context.Context, userID, listID uuid.UUID, name string) error {
	for i := range f.lists {
		if f.lists[i].ID == listID && f.lists[i].UserID == userID {
			f.lists[i].Name = name
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeShoppingRepo) Delete(ctx context.Context, userID, listID uuid.UUID) error {
	for i := range f.lists {
		if f.lists[i].ID == listID && f.lists[i].UserID == userID {
			f.lists = append(f.lists[:i], f.lists[i+1:]...)
			var kept []domain.ShoppingListItem
			for _, item := range f.items {
				if item.ListID != listID {
					kept = append(kept, item)
				}
			}
			f.items = kept
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeShoppingRepo) ListItems(ctx context.Context, listID uuid.UUID) ([]domain.ShoppingListItem, error) {
	return f.itemsOf(listID), nil
}

func (f *fakeShoppingRepo) AddItem(ctx context.Context, item *domain.ShoppingListItem) error {
	position := 0
	for _, existing := range f.items {
		if existing.ListID == item.ListID && existing.Position >= position {
			position = existing.Position + 1
		}
	}
	item.Position = position
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeShoppingRepo) UpdateItem(ctx context.Context, item *domain.ShoppingListItem) error {
	for i := range f.items {
		if f.items[i].ID == item.ID && f.items[i].ListID == item.ListID {
			f.items[i] = *item
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeShoppingRepo) DeleteItem(ctx context.Context, listID, itemID uuid.UUID) error {
	for i := range f.items {
		if f.items[i].ID == itemID && f.items[i].ListID == listID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeShoppingRepo) ToggleItem(ctx context.Context, listID, itemID uuid.UUID) (*domain.ShoppingListItem, error) {
	for i := range f.items {
		if f.items[i].ID == itemID && f.items[i].ListID == listID {
			f.items[i].Checked = !f.items[i].Checked
			match := f.items[i]
			return &match, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeRecipeRepo struct {
	recipes []domain.Recipe
}

func (f *fakeRecipeRepo) List(ctx context.Context, filter repository.RecipeFilter) ([]domain.Recipe, error) {
	return append([]domain.Recipe(nil), f.recipes...), nil
}

func (f *fakeRecipeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	for _, r := range f.recipes {
		if r.ID == id {
			match := r
			return &match, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRecipeRepo) Create(ctx context.Context, recipe *domain.Recipe) error {
	f.recipes = append(f.recipes, *recipe)
	return nil
}

func (f *fakeRecipeRepo) Update(ctx context.Context, recipe *domain.Recipe) error {
	for i := range f.recipes {
		if f.recipes[i].ID == recipe.ID && f.recipes[i].AuthorID == recipe.AuthorID {
			f.recipes[i] = *recipe
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeRecipeRepo) Delete(ctx context.Context, authorID, id uuid.UUID) error {
	for i := range f.recipes {
		if f.recipes[i].ID == id && f.recipes[i].AuthorID == authorID {
			f.recipes = append(f.recipes[:i], f.recipes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeRecipeRepo) SetImageKey(ctx context.Context, authorID, id uuid.UUID, key string) error {
	for i := range f.recipes {
		if f.recipes[i].ID == id && f.recipes[i].AuthorID == authorID {
			f.recipes[i].ImageKey = &key
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeUserRepo struct {
	users []domain.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			match := u
			return &match, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			match := u
			return &match, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeObjectStorage struct {
	objects      map[string][]byte
	contentTypes map[string]string
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (f *fakeObjectStorage) UploadObject(ctx context.Context, key string, data []byte, contentType string) error {
	f.objects[key] = data
	f.contentTypes[key] = contentType
	return nil
}

func (f *fakeObjectStorage) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://storage.test/" + key, nil
}

func (f *fakeObjectStorage) DeleteObject(ctx context.Context, key string) error {
	delete(f.objects, key)
	delete(f.contentTypes, key)
	return nil
}

type fakeDashboardCache struct {
	getErr        error
	setErr        error
	stored        map[uuid.UUID]*domain.Dashboard
	invalidations int
}

func (f *fakeDashboardCache) Get(ctx context.Context, userID uuid.UUID) (*domain.Dashboard, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	dashboard, ok := f.stored[userID]
	return dashboard, ok, nil
}

func (f *fakeDashboardCache) Set(ctx context.Context, userID uuid.UUID, dashboard *domain.Dashboard) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.stored == nil {
		f.stored = make(map[uuid.UUID]*domain.Dashboard)
	}
	f.stored[userID] = dashboard
	return nil
}

func (f *fakeDashboardCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	f.invalidations++
	delete(f.stored, userID)
	return nil
}
