// Package availability calcula os horários livres de um barbeiro em um dia.
//
// Tudo aqui é puro: sem I/O, sem estado entre chamadas. Os horários são
// relógio local "ingênuo" (HH:MM), sem conversão de fuso; quem chama
// garante que expediente e agendamentos estão no mesmo referencial.
package availability

import "time"

// Granularity é o passo fixo, em minutos, entre horários candidatos.
// Não depende da duração do serviço: um serviço de 45 minutos continua
// sendo oferecido só em :00 e :30.
const Granularity = 30

// WorkingHourRule é a configuração de expediente de um dia da semana.
// DayOfWeek segue o calendário (domingo = 0), não o ISO.
type WorkingHourRule struct {
	DayOfWeek  int
	StartTime  string
	EndTime    string
	BreakStart string
	BreakEnd   string
	IsActive   bool
}

// ExistingAppointment é um agendamento não cancelado do mesmo barbeiro e dia.
// ServiceDuration zero indica que o serviço não foi encontrado.
type ExistingAppointment struct {
	ID              string
	ServiceID       string
	StartTime       string
	ServiceDuration int
}

type Input struct {
	Duration     int
	Date         time.Time
	WorkingHours []WorkingHourRule
	Existing     []ExistingAppointment
}

type Result struct {
	Slots []string

	// Agendamentos ignorados na checagem de conflito porque o serviço
	// (ou o horário) não pôde ser resolvido.
	Unresolved []ExistingAppointment
}

// Calculator permite trocar o passo entre candidatos. O valor zero usa
// Granularity.
type Calculator struct {
	Step int
}

type interval struct {
	start int
	end   int
}

// AvailableSlots devolve os horários de início livres em ordem crescente.
// Entradas ausentes ou inválidas resultam em lista vazia, nunca em erro.
func AvailableSlots(
	duration int,
	date time.Time,
	workingHours []WorkingHourRule,
	existing []ExistingAppointment,
) []string {
	return Compute(Input{
		Duration:     duration,
		Date:         date,
		WorkingHours: workingHours,
		Existing:     existing,
	}).Slots
}

func Compute(in Input) Result {
	return Calculator{}.Compute(in)
}

func (c Calculator) Compute(in Input) Result {
	res := Result{Slots: []string{}}

	if in.Duration <= 0 || in.Date.IsZero() || len(in.WorkingHours) == 0 {
		return res
	}

	rule, ok := ruleFor(in.WorkingHours, in.Date.Weekday())
	if !ok {
		return res
	}

	open, okStart := ParseClock(rule.StartTime)
	closing, okEnd := ParseClock(rule.EndTime)
	if !okStart || !okEnd || open >= closing {
		return res
	}

	busy, unresolved := busyIntervals(rule, in.Existing)
	res.Unresolved = unresolved

	for t := open; t < closing; t += c.step() {
		end := t + in.Duration

		// passaria do fechamento; os próximos candidatos também
		if end > closing {
			break
		}

		if overlapsAny(t, end, busy) {
			continue
		}

		res.Slots = append(res.Slots, FormatClock(t))
	}

	return res
}

func (c Calculator) step() int {
	if c.Step <= 0 {
		return Granularity
	}
	return c.Step
}

// ruleFor devolve a primeira regra ativa do dia.
func ruleFor(rules []WorkingHourRule, day time.Weekday) (WorkingHourRule, bool) {
	for _, r := range rules {
		if r.IsActive && r.DayOfWeek == int(day) {
			return r, true
		}
	}
	return WorkingHourRule{}, false
}

func busyIntervals(
	rule WorkingHourRule,
	existing []ExistingAppointment,
) ([]interval, []ExistingAppointment) {

	busy := make([]interval, 0, len(existing)+1)
	var unresolved []ExistingAppointment

	// pausa (almoço) bloqueia como um agendamento
	if bs, ok := ParseClock(rule.BreakStart); ok {
		if be, ok := ParseClock(rule.BreakEnd); ok && bs < be {
			busy = append(busy, interval{start: bs, end: be})
		}
	}

	for _, a := range existing {
		start, ok := ParseClock(a.StartTime)
		if !ok || a.ServiceDuration <= 0 {
			unresolved = append(unresolved, a)
			continue
		}
		busy = append(busy, interval{start: start, end: start + a.ServiceDuration})
	}

	return busy, unresolved
}

// Intervalos semiabertos: [s1,e1) e [s2,e2) só não se sobrepõem quando um
// termina antes ou exatamente quando o outro começa.
func overlaps(s1, e1, s2, e2 int) bool {
	return !(e1 <= s2 || s1 >= e2)
}

func overlapsAny(start, end int, busy []interval) bool {
	for _, b := range busy {
		if overlaps(start, end, b.start, b.end) {
			return true
		}
	}
	return false
}
